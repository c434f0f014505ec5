package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aria-lang/seqdiff-go/api/middleware"
	"github.com/aria-lang/seqdiff-go/internal/report"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, mode seqdiff.Mode, maxCells int, limits Limits) http.Handler {
	t.Helper()
	cfg := seqdiff.DefaultConfig()
	cfg.Mode = mode
	if maxCells > 0 {
		cfg.MaxCells = maxCells
	}
	engine, err := seqdiff.New(cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api", New(engine, nil, limits).Routes)
	return r
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, &buf))
	return rec
}

func TestAlign(t *testing.T) {
	h := newServer(t, seqdiff.Dovetail, 0, Limits{})

	rec := post(t, h, "/api/align", CompareRequest{
		Sequence1: "TTTTACGT",
		Sequence2: "ACGTGGGG",
		Name1:     "left",
		Rows:      true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc report.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "left", doc.Seq1.Name)
	assert.Equal(t, "sequence2", doc.Seq2.Name)
	assert.Equal(t, "dovetail", doc.Mode)
	assert.Equal(t, 0, doc.Cost.Penalty)
	assert.Equal(t, "4D4M4I", doc.CIGAR)
	require.NotNil(t, doc.Alignment)
	assert.Equal(t, "TTTTACGT----", doc.Alignment.Top)
	assert.Equal(t, 4, doc.Stats.Seq1.Leading)
}

func TestAlignWithoutRows(t *testing.T) {
	h := newServer(t, seqdiff.Dovetail, 0, Limits{})

	rec := post(t, h, "/api/align", CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT"})
	require.Equal(t, http.StatusOK, rec.Code)

	var doc report.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Nil(t, doc.Alignment)
	assert.Equal(t, 4, doc.Stats.Matches)
}

func TestScore(t *testing.T) {
	h := newServer(t, seqdiff.Global, 0, Limits{})

	rec := post(t, h, "/api/score", CompareRequest{Sequence1: "ACGT", Sequence2: "AACGT"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "global", resp.Mode)
	assert.Equal(t, 5, resp.Cost.Penalty)
}

func TestDiff(t *testing.T) {
	h := newServer(t, seqdiff.Global, 0, Limits{})

	rec := post(t, h, "/api/diff", CompareRequest{
		Sequence1: "ACGTACGT",
		Sequence2: "ACGAACGT",
		Quality1:  "IIIIIIII",
		Quality2:  "!!!+!!!!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DiffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Diffs, 1)
	assert.Equal(t, seqdiff.Diff{Pos1: 4, Pos2: 4, Kind: report.Sub, Base1: "T", Base2: "A", Qual1: 40, Qual2: 10}, resp.Diffs[0])
}

func TestDiffEmptyList(t *testing.T) {
	h := newServer(t, seqdiff.Dovetail, 0, Limits{})

	rec := post(t, h, "/api/diff", CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"diffs":[]`)
}

func TestDiffRevcompAndTrim(t *testing.T) {
	h := newServer(t, seqdiff.Global, 0, Limits{})

	// ACGT trimmed out of both reads; the second is its own reverse complement
	rec := post(t, h, "/api/diff", CompareRequest{
		Sequence1: "TTACGTAA",
		Quality1:  "##IIII##",
		Sequence2: "GGACGTCC",
		Quality2:  "##IIII##",
		Trim:      20,
		Revcomp:   true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DiffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Diffs)
}

func TestReverseComplement(t *testing.T) {
	h := newServer(t, seqdiff.Dovetail, 0, Limits{})

	rec := post(t, h, "/api/revcomp", SequenceRequest{Sequence: "aaccgn"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ReverseComplementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NCGGTT", resp.ReverseComplement)
	assert.Equal(t, 6, resp.Info.Length)
	assert.Equal(t, 1, resp.Info.Ambiguous)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		mode     seqdiff.Mode
		maxCells int
		limits   Limits
		path     string
		body     any
		status   int
		kind     string
	}{
		{
			name:   "malformed json",
			path:   "/api/align",
			body:   `{"sequence1": `,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			path:   "/api/align",
			body:   `{"sequence1": "ACGT", "sequence2": "ACGT", "gap": 3}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing sequence",
			path:   "/api/score",
			body:   CompareRequest{Sequence1: "ACGT"},
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid base",
			path:   "/api/align",
			body:   CompareRequest{Sequence1: "ACGT", Sequence2: "ACXT"},
			status: http.StatusBadRequest,
		},
		{
			name:   "quality length mismatch",
			path:   "/api/diff",
			body:   CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT", Quality1: "III"},
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid quality",
			path:   "/api/diff",
			body:   CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT", Quality1: "II I"},
			status: http.StatusBadRequest,
		},
		{
			name:   "trim out of range",
			path:   "/api/diff",
			body:   CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT", Trim: 94},
			status: http.StatusBadRequest,
		},
		{
			name:   "sequence too long",
			limits: Limits{MaxSequenceLength: 4},
			path:   "/api/align",
			body:   CompareRequest{Sequence1: "ACGTA", Sequence2: "ACGT"},
			status: http.StatusRequestEntityTooLarge,
			kind:   "sequence too long",
		},
		{
			name:   "body too large",
			limits: Limits{MaxBodyBytes: 16},
			path:   "/api/align",
			body:   CompareRequest{Sequence1: "ACGTACGTACGT", Sequence2: "ACGT"},
			status: http.StatusRequestEntityTooLarge,
			kind:   "request too large",
		},
		{
			name:     "allocation limit",
			maxCells: 10,
			path:     "/api/align",
			body:     CompareRequest{Sequence1: "ACGT", Sequence2: "ACGT"},
			status:   http.StatusRequestEntityTooLarge,
			kind:     "allocation failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, tt.mode, tt.maxCells, tt.limits)
			rec := post(t, h, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

func TestRequestIDEchoed(t *testing.T) {
	h := newServer(t, seqdiff.Dovetail, 0, Limits{})

	req := httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader(`{}`))
	req.Header.Set(middleware.RequestIDHeader, "trace-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "trace-7", rec.Header().Get(middleware.RequestIDHeader))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trace-7", resp.RequestID)
}
