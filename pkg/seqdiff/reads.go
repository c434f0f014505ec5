package seqdiff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/seqdiff-go/internal/quality"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// QualityScores is the per-base quality of a FASTQ read.
type QualityScores = quality.Scores

// Read is a sequence with optional per-base quality.
type Read struct {
	Sequence *Sequence
	Quality  *QualityScores
}

// NewRead creates a read. qualityScores may be nil.
func NewRead(seq *Sequence, qualityScores *QualityScores) (*Read, error) {
	if qualityScores != nil && seq.Len() != qualityScores.Len() {
		return nil, fmt.Errorf("sequence and quality must have same length")
	}
	return &Read{Sequence: seq, Quality: qualityScores}, nil
}

// ReverseComplement returns the read on the opposite strand.
func (r *Read) ReverseComplement() *Read {
	out := &Read{Sequence: r.Sequence.ReverseComplement()}
	if r.Quality != nil {
		out.Quality = r.Quality.Reverse()
	}
	return out
}

// Trim drops bases below threshold at both ends. Reads without quality are
// returned unchanged.
func (r *Read) Trim(threshold int) (*Read, error) {
	if r.Quality == nil || threshold <= 0 {
		return r, nil
	}

	start, end := r.Quality.TrimEnds(threshold)
	if end <= start {
		return nil, fmt.Errorf("%s: no bases with quality %d or better", r.Sequence.Name(), threshold)
	}

	seq, err := r.Sequence.Subsequence(start, end)
	if err != nil {
		return nil, err
	}

	qual, err := r.Quality.Slice(start, end)
	if err != nil {
		return nil, err
	}
	return &Read{Sequence: seq, Quality: qual}, nil
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader. Bases are upper-cased and
// must be IUPAC nucleotide codes.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var currentID, currentDesc string
	var currentBases strings.Builder

	flushSequence := func() error {
		if currentBases.Len() > 0 {
			seq, err := sequence.WithMetadata(currentBases.String(), currentID, currentDesc)
			if err != nil {
				return fmt.Errorf("sequence %q: %w", currentID, err)
			}
			sequences = append(sequences, seq)
			currentBases.Reset()
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			if err := flushSequence(); err != nil {
				return nil, err
			}

			parts := strings.SplitN(line[1:], " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}

	if err := flushSequence(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sequences, nil
}

// ParseFASTQ parses four-line FASTQ records from a reader.
func ParseFASTQ(r io.Reader) ([]*Read, error) {
	reads := make([]*Read, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	var id, bases string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++

		switch (lineNum - 1) % 4 {
		case 0:
			if len(line) == 0 || line[0] != '@' {
				return nil, fmt.Errorf("line %d: expected header starting with @", lineNum)
			}
			id = strings.SplitN(line[1:], " ", 2)[0]
		case 1:
			bases = line
		case 2:
			if len(line) == 0 || line[0] != '+' {
				return nil, fmt.Errorf("line %d: expected '+' line", lineNum)
			}
		case 3:
			seq, err := sequence.WithID(bases, id)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum-2, err)
			}

			qual, err := quality.FromPhred33(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

			read, err := NewRead(seq, qual)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			reads = append(reads, read)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if lineNum%4 != 0 {
		return nil, fmt.Errorf("line %d: truncated FASTQ record", lineNum)
	}

	return reads, nil
}

// ReadFASTQ reads reads from a FASTQ file.
func ReadFASTQ(filename string) ([]*Read, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTQ(file)
}

// ParseReads parses FASTQ when the first non-blank byte is '@' and FASTA
// otherwise. FASTA reads carry no quality.
func ParseReads(r io.Reader) ([]*Read, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return []*Read{}, nil
			}
			return nil, fmt.Errorf("reading file: %w", err)
		}
		if b[0] != ' ' && b[0] != '\t' && b[0] != '\r' && b[0] != '\n' {
			break
		}
		_, _ = br.ReadByte()
	}

	if b, _ := br.Peek(1); b[0] == '@' {
		return ParseFASTQ(br)
	}

	sequences, err := ParseFASTA(br)
	if err != nil {
		return nil, err
	}
	reads := make([]*Read, len(sequences))
	for i, seq := range sequences {
		reads[i] = &Read{Sequence: seq}
	}
	return reads, nil
}

// ReadFirst returns the first read in a FASTA or FASTQ file.
func ReadFirst(filename string) (*Read, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	reads, err := ParseReads(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(reads) == 0 {
		return nil, fmt.Errorf("%s: no sequences found", filename)
	}
	return reads[0], nil
}
