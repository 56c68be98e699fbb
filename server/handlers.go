package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/krishisetu/krishisetu/advisor"
	kerrors "github.com/krishisetu/krishisetu/errors"
	"github.com/krishisetu/krishisetu/language"
	"github.com/krishisetu/krishisetu/middleware"
	"github.com/krishisetu/krishisetu/report"
)

// QueryRequest is the request body of the query endpoints.
type QueryRequest struct {
	Query         string                `json:"query"`
	Context       *advisor.QueryContext `json:"context,omitempty"`
	Comprehensive bool                  `json:"comprehensive,omitempty"`
}

// QueryResponse is the uniform envelope of the query endpoints.
type QueryResponse struct {
	Success        bool                     `json:"success"`
	Data           any                      `json:"data,omitempty"`
	Confidence     float64                  `json:"confidence"`
	Source         string                   `json:"source"`
	Classification *language.Classification `json:"classification,omitempty"`
	Error          string                   `json:"error,omitempty"`
	Timestamp      string                   `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/health" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   Version,
		"timestamp": nowISO(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	if req.Comprehensive {
		s.serveComprehensive(w, r, req)
		return
	}

	mctx := middleware.NewContext(r.Context(), req.Query, "simple")
	mctx.QueryContext = queryContext(req)

	err := s.chain.Execute(mctx, func(ctx *middleware.Context) error {
		cls := language.ProcessQuery(ctx.Query)
		ctx.Classification = &cls
		res := s.deps.Crew.ProcessSimple(ctx.Context(), ctx.Query, ctx.QueryContext)
		ctx.Result = &res
		return nil
	})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, QueryResponse{
		Success:        mctx.Result.Success,
		Data:           mctx.Result.Data,
		Confidence:     mctx.Result.Confidence,
		Source:         mctx.Result.Source,
		Classification: mctx.Classification,
		Error:          mctx.Result.Err,
		Timestamp:      nowISO(),
	})
}

func (s *Server) serveComprehensive(w http.ResponseWriter, r *http.Request, req QueryRequest) {
	mctx := middleware.NewContext(r.Context(), req.Query, "comprehensive")
	mctx.QueryContext = queryContext(req)

	var comprehensive *QueryResponse
	err := s.chain.Execute(mctx, func(ctx *middleware.Context) error {
		cls := language.ProcessQuery(ctx.Query)
		ctx.Classification = &cls

		resp, err := s.deps.Crew.ProcessComprehensive(ctx.Context(), ctx.Query, ctx.QueryContext)
		if err != nil {
			return err
		}
		ctx.Result = &advisor.Result{
			Success:    true,
			Confidence: resp.OverallConfidence,
			Source:     resp.Source,
		}
		comprehensive = &QueryResponse{
			Success:        true,
			Data:           resp,
			Confidence:     resp.OverallConfidence,
			Source:         resp.Source,
			Classification: ctx.Classification,
			Timestamp:      nowISO(),
		}
		return nil
	})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, *comprehensive)
}

// advisorHandler serves the single-advisor endpoints.
func (s *Server) advisorHandler(a advisor.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := s.decodeQuery(w, r)
		if !ok {
			return
		}

		mctx := middleware.NewContext(r.Context(), req.Query, "direct")
		mctx.QueryContext = queryContext(req)

		err := s.chain.Execute(mctx, func(ctx *middleware.Context) error {
			cls := language.ProcessQuery(ctx.Query)
			ctx.Classification = &cls
			res := a.ProcessQuery(ctx.Context(), ctx.Query, ctx.QueryContext)
			ctx.Result = &res
			return nil
		})
		if err != nil {
			s.writePipelineError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, QueryResponse{
			Success:        mctx.Result.Success,
			Data:           mctx.Result.Data,
			Confidence:     mctx.Result.Confidence,
			Source:         mctx.Result.Source,
			Classification: mctx.Classification,
			Error:          mctx.Result.Err,
			Timestamp:      nowISO(),
		})
	}
}

// maxUploadBytes bounds an analyze request body.
const maxUploadBytes = 20 << 20

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}
	if s.deps.Analysis == nil {
		s.writeError(w, http.StatusServiceUnavailable, kerrors.ErrProviderUnavailable.Error())
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	query := r.FormValue("query")
	files := make(map[string][]byte)
	if r.MultipartForm != nil {
		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				f, err := header.Open()
				if err != nil {
					s.writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s: %v", header.Filename, err))
					return
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					s.writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s: %v", header.Filename, err))
					return
				}
				files[header.Filename] = data
			}
		}
	}
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	resp, err := s.deps.Analysis.Analyze(r.Context(), query, files)
	if err != nil {
		if errors.Is(err, kerrors.ErrSchemaValidation) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("analysis failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	resp, err := s.deps.Crew.ProcessComprehensive(r.Context(), req.Query, queryContext(req))
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	obj := report.Build(resp)

	switch r.URL.Query().Get("format") {
	case "csv":
		data, err := report.CSVBytes(obj)
		if err != nil {
			s.logger.Error("csv rendering failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "report rendering failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="advisory_report.csv"`)
		w.Write(data)
	case "docx":
		data, err := report.DocxBytes(obj)
		if err != nil {
			s.logger.Error("docx rendering failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "report rendering failed")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="advisory_report.docx"`)
		w.Write(data)
	default:
		s.writeJSON(w, http.StatusOK, obj)
	}
}

func (s *Server) handleRecentQueries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	if s.deps.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "query log is not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.deps.Store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("query log read failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "query log read failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"queries": records,
		"count":   len(records),
	})
}

func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (QueryRequest, bool) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return QueryRequest{}, false
	}
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return QueryRequest{}, false
	}
	return req, true
}

func queryContext(req QueryRequest) *advisor.QueryContext {
	if req.Context != nil {
		return req.Context
	}
	return &advisor.QueryContext{}
}

func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kerrors.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusGatewayTimeout, "query processing timed out")
	default:
		s.logger.Error("query processing failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "query processing failed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{
		Error:      message,
		StatusCode: status,
		Timestamp:  nowISO(),
	})
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
