package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-workshop/pkg/model"
)

// WriteMapping writes one row per student (ascending id) with k
// workshop_id_N columns. Unused columns hold noAssignment.
func WriteMapping(out io.Writer, mapping model.Mapping, k int, noAssignment string) error {
	k = max(k, mapping.MaxAssigned())
	w := gocsv.NewSafeCSVWriter(csv.NewWriter(out))

	header := make([]string, 0, k+1)
	header = append(header, "student_id")
	for i := 1; i <= k; i++ {
		header = append(header, fmt.Sprintf("%s%d", workshopColumnPrefix, i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, k+1)
	for _, sid := range mapping.StudentIDs() {
		row[0] = sid.String()
		ids := mapping[sid]
		for i := 0; i < k; i++ {
			if i < len(ids) {
				row[i+1] = ids[i].String()
			} else {
				row[i+1] = noAssignment
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportMapping writes the mapping to the CSV file at path, replacing it.
func ExportMapping(mapping model.Mapping, k int, noAssignment string, path string) (string, error) {
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := WriteMapping(out, mapping, k, noAssignment); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, out.Close()
}

// ExportMappingString formats the mapping as CSV text.
func ExportMappingString(mapping model.Mapping, k int, noAssignment string) (string, error) {
	var sb strings.Builder
	if err := WriteMapping(&sb, mapping, k, noAssignment); err != nil {
		return "", err
	}
	return sb.String(), nil
}
