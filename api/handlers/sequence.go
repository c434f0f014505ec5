package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
	"github.com/aria-lang/seqdiff-go/internal/stats"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence" validate:"required"`
	Name     string `json:"name,omitempty" validate:"max=256"`
}

// ReverseComplementResponse represents the response for reverse complement.
type ReverseComplementResponse struct {
	ReverseComplement string               `json:"reverse_complement"`
	Info              *stats.SequenceStats `json:"info"`
}

// ReverseComplement handles POST /api/revcomp.
func (h *Handler) ReverseComplement(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if limit := h.limits.MaxSequenceLength; limit > 0 && len(req.Sequence) > limit {
		h.writeError(w, r, &sequence.TooLongError{Limit: limit, Actual: len(req.Sequence)})
		return
	}

	name := req.Name
	if name == "" {
		name = "sequence"
	}
	seq, err := sequence.WithID(req.Sequence, name)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("sequence: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, ReverseComplementResponse{
		ReverseComplement: seq.ReverseComplement().Bases,
		Info:              stats.FromSequence(seq),
	})
}
