package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/csvroster/internal/core"
	"github.com/JonMunkholm/csvroster/internal/web/templates"
)

// multipartOverhead is allowed on top of the file size limit for form
// boundaries and headers.
const multipartOverhead = 1 << 20

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderHTML(r.Context(), w, http.StatusOK, templates.UploadPage())
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload imports the multipart "file" field. JSON clients get the
// validated table, HTMX gets the table fragment and browsers are redirected
// to the import page.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+multipartOverhead)

	file, fileName, err := formFile(r, "file")
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}
	defer file.Close()

	imp, err := s.service.Import(WithRequestMetadata(r.Context(), r), fileName, file)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	switch {
	case isHTMX(r):
		w.Header().Set("HX-Push-Url", importURL(imp.ID))
		renderHTML(r.Context(), w, http.StatusOK, templates.RosterTable(imp))
	case wantsJSON(r):
		writeJSON(w, http.StatusCreated, newImportResponse(imp))
	default:
		http.Redirect(w, r, importURL(imp.ID), http.StatusSeeOther)
	}
}

// formFile returns the named upload and its client file name.
func formFile(r *http.Request, name string) (multipart.File, string, error) {
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", fmt.Errorf("%w: limit is %d bytes", core.ErrFileTooLarge, maxErr.Limit)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, "", fmt.Errorf("%w: %v", errNoFile, err)
		}
		return nil, "", fmt.Errorf("%w: %v", errBadRequest, err)
	}

	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errNoFile, err)
	}
	return file, header.Filename, nil
}

// handleViewImport renders a stored import as a page.
func (s *Server) handleViewImport(w http.ResponseWriter, r *http.Request) {
	imp, err := s.service.Get(chi.URLParam(r, "importID"))
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}
	renderHTML(r.Context(), w, http.StatusOK, templates.ImportPage(imp))
}

// handleGetImport returns a stored import as JSON.
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	imp, err := s.service.Get(chi.URLParam(r, "importID"))
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, newImportResponse(imp))
}

// handleUpdateCell edits one raw value and re-validates the table. The edit
// arrives as JSON ({"field","value"}) or as form fields of the same names.
func (s *Server) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	rowParam := chi.URLParam(r, "rowID")
	rowID, err := strconv.Atoi(rowParam)
	if err != nil {
		err = fmt.Errorf("%w: %q", core.ErrRowNotFound, rowParam)
		respondError(w, r, err, statusForError(err))
		return
	}

	req, err := decodeUpdateCell(r)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	field, ok := core.ParseField(req.Field)
	if !ok {
		err := fmt.Errorf("%w: %q", core.ErrUnknownField, req.Field)
		respondError(w, r, err, statusForError(err))
		return
	}

	imp, err := s.service.UpdateCell(r.Context(), importID, rowID, field, req.Value)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	switch {
	case isHTMX(r):
		renderHTML(r.Context(), w, http.StatusOK, templates.RosterTable(imp))
	case wantsJSON(r):
		writeJSON(w, http.StatusOK, newImportResponse(imp))
	default:
		http.Redirect(w, r, importURL(imp.ID), http.StatusSeeOther)
	}
}

func decodeUpdateCell(r *http.Request) (UpdateCellRequest, error) {
	var req UpdateCellRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	req.Field = r.PostFormValue("field")
	req.Value = r.PostFormValue("value")
	return req, nil
}

// handleDeleteImport discards a stored import.
func (s *Server) handleDeleteImport(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(chi.URLParam(r, "importID")); err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusResponse reports import capacity.
type StatusResponse struct {
	Imports int                      `json:"imports"`
	Limiter core.ImportLimiterStatus `json:"limiter"`
}

// handleStatus reports stored sessions and import slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Imports: s.service.ImportCount(),
		Limiter: s.service.LimiterStatus(),
	})
}

// handleExportXLSX downloads the validated table as a workbook with flagged
// cells highlighted.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "xlsx", contentTypeXLSX, core.WriteXLSX)
}

// handleExportCSV downloads the validated table as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "csv", contentTypeCSV, core.WriteCSV)
}

type exportFunc func(w io.Writer, heading core.Heading, rows []core.NormalizedRow) error

// export buffers the whole file so write errors still produce an error
// response instead of a truncated download.
func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write exportFunc) {
	imp, err := s.service.Get(chi.URLParam(r, "importID"))
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, imp.Heading, imp.Normalized); err != nil {
		respondError(w, r, fmt.Errorf("export %s: %w", ext, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(imp.FileName, ext)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// exportName derives the download name: "roster.csv" -> "roster_validated.xlsx".
func exportName(fileName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if base == "" || base == "." || base == "/" {
		base = "roster"
	}
	return base + "_validated." + ext
}

func importURL(id string) string {
	return "/imports/" + id
}
