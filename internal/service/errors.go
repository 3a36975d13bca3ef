package service

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
)

func errUnsupportedExportFormat(format string) error {
	return ierr.NewErrorf("unsupported export format %q", format).
		WithHint("Поддерживаются форматы csv и json").
		WithReportableDetails(map[string]any{
			"format":         format,
			"allowed_values": []string{ExportFormatCSV, ExportFormatJSON},
		}).
		Mark(ierr.ErrValidation)
}

func errLoginRequired(hint string) error {
	return ierr.NewError("login required").
		WithHint(hint).
		Mark(ierr.ErrUnauthenticated)
}
