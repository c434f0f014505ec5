// Package handlers implements the seqdiff HTTP API.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aria-lang/seqdiff-go/internal/quality"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Limits bounds what a single request may ask for. Zero disables a limit.
type Limits struct {
	MaxSequenceLength int
	MaxBodyBytes      int64
}

// Handler serves comparisons from one shared engine.
type Handler struct {
	engine *seqdiff.Engine
	logger *slog.Logger
	limits Limits
}

// New creates a Handler. A nil logger discards.
func New(engine *seqdiff.Engine, logger *slog.Logger, limits Limits) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{engine: engine, logger: logger, limits: limits}
}

// Routes mounts the API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/align", h.Align)
	r.Post("/score", h.Score)
	r.Post("/diff", h.Diff)
	r.Post("/revcomp", h.ReverseComplement)
}

// CompareRequest is the body of /align, /score and /diff.
type CompareRequest struct {
	Sequence1 string `json:"sequence1" validate:"required"`
	Sequence2 string `json:"sequence2" validate:"required"`
	Name1     string `json:"name1,omitempty" validate:"max=256"`
	Name2     string `json:"name2,omitempty" validate:"max=256"`

	// Phred+33 qualities; when set they must match the sequence length
	Quality1 string `json:"quality1,omitempty"`
	Quality2 string `json:"quality2,omitempty"`

	// compare against the reverse complement of sequence2
	Revcomp bool `json:"revcomp,omitempty"`

	// quality threshold for trimming read ends
	Trim int `json:"trim,omitempty" validate:"gte=0,lte=93"`

	// include the gapped alignment rows in /align
	Rows bool `json:"rows,omitempty"`
}

// ScoreResponse is the reply of /score.
type ScoreResponse struct {
	Mode string       `json:"mode"`
	Cost seqdiff.Cost `json:"cost"`
}

// DiffResponse is the reply of /diff.
type DiffResponse struct {
	Seq1  string         `json:"seq1"`
	Seq2  string         `json:"seq2"`
	Diffs []seqdiff.Diff `json:"diffs"`
}

// Align handles POST /api/align.
func (h *Handler) Align(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	r1, r2, err := h.decodeReads(w, r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.engine.CompareReads(r.Context(), r1, r2)
	if err != nil {
		observe("align", r1.Sequence.Len(), r2.Sequence.Len(), seqdiff.Cost{}, err)
		h.writeError(w, r, err)
		return
	}
	observe("align", r1.Sequence.Len(), r2.Sequence.Len(), res.Alignment.Cost, nil)

	writeJSON(w, http.StatusOK, res.Document(req.Rows))
}

// Score handles POST /api/score.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	r1, r2, err := h.decodeReads(w, r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cost, err := h.engine.Score(r.Context(), r1.Sequence, r2.Sequence)
	observe("score", r1.Sequence.Len(), r2.Sequence.Len(), cost, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{Mode: h.engine.Mode().String(), Cost: cost})
}

// Diff handles POST /api/diff.
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	r1, r2, err := h.decodeReads(w, r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.engine.CompareReads(r.Context(), r1, r2)
	if err != nil {
		observe("diff", r1.Sequence.Len(), r2.Sequence.Len(), seqdiff.Cost{}, err)
		h.writeError(w, r, err)
		return
	}
	observe("diff", r1.Sequence.Len(), r2.Sequence.Len(), res.Alignment.Cost, nil)

	diffs := res.Diffs
	if diffs == nil {
		diffs = []seqdiff.Diff{}
	}
	writeJSON(w, http.StatusOK, DiffResponse{Seq1: res.Name1, Seq2: res.Name2, Diffs: diffs})
}

// decode reads a size-limited JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if h.limits.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxBodyBytes)
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if _, ok := err.(*http.MaxBytesError); ok {
			return err
		}
		return &requestError{msg: "invalid request body", err: err}
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (h *Handler) decodeReads(w http.ResponseWriter, r *http.Request, req *CompareRequest) (*seqdiff.Read, *seqdiff.Read, error) {
	if err := h.decode(w, r, req); err != nil {
		return nil, nil, err
	}

	r1, err := h.read("sequence1", req.Name1, req.Sequence1, req.Quality1, req.Trim)
	if err != nil {
		return nil, nil, err
	}
	r2, err := h.read("sequence2", req.Name2, req.Sequence2, req.Quality2, req.Trim)
	if err != nil {
		return nil, nil, err
	}

	if req.Revcomp {
		r2 = r2.ReverseComplement()
	}
	return r1, r2, nil
}

// read builds a validated read, named field when name is empty.
func (h *Handler) read(field, name, bases, qual string, trim int) (*seqdiff.Read, error) {
	if limit := h.limits.MaxSequenceLength; limit > 0 && len(bases) > limit {
		return nil, fmt.Errorf("%s: %w", field, &sequence.TooLongError{Limit: limit, Actual: len(bases)})
	}

	if name == "" {
		name = field
	}
	seq, err := sequence.WithID(bases, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	var scores *quality.Scores
	if qual != "" {
		scores, err = quality.FromPhred33(qual)
		if err != nil {
			return nil, fmt.Errorf("%s quality: %w", field, err)
		}
	}

	read, err := seqdiff.NewRead(seq, scores)
	if err != nil {
		return nil, &requestError{msg: field, err: err}
	}

	read, err = read.Trim(trim)
	if err != nil {
		return nil, &requestError{msg: field, err: err}
	}
	return read, nil
}
