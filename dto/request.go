package dto

import "errors"

// BatchRequest describes one batch run over a directory of PDFs.
type BatchRequest struct {
	InputDir       string `json:"input_dir" binding:"required"`
	OutputDir      string `json:"output_dir"`
	Scheme         string `json:"scheme"`
	OrganizeByDate bool   `json:"organize_by_date"`
	DryRun         bool   `json:"dry_run"`
	Workers        int    `json:"workers"`
}

// Validate performs basic validation on the request
func (r *BatchRequest) Validate() error {
	if r.InputDir == "" {
		return errors.New("input_dir is required")
	}
	if r.Scheme != "" {
		if _, err := ParseNamingScheme(r.Scheme); err != nil {
			return err
		}
	}
	if r.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}
