package splitter

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		wantCount int
	}{
		{
			name:      "empty input yields no chunks",
			text:      "",
			chunkSize: 20,
			overlap:   5,
			wantCount: 0,
		},
		{
			name:      "short input yields single chunk",
			text:      "hello",
			chunkSize: 20,
			overlap:   5,
			wantCount: 1,
		},
		{
			name:      "sentence sample splits with overlap",
			text:      "The sky is blue. Grass is green. Water is wet.",
			chunkSize: 20,
			overlap:   5,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.chunkSize, tt.overlap)

			if len(chunks) != tt.wantCount {
				t.Fatalf("chunk count = %d, want %d (%q)", len(chunks), tt.wantCount, chunks)
			}

			for i, c := range chunks {
				if len([]rune(c)) > tt.chunkSize {
					t.Errorf("chunk %d length %d exceeds chunkSize %d", i, len([]rune(c)), tt.chunkSize)
				}
				if c == "" {
					t.Errorf("chunk %d is empty", i)
				}
			}
		})
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)

	first := Split(text, 100, 20)
	second := Split(text, 100, 20)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitOverlapRegion(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunkSize, overlap := 30, 10

	chunks := Split(text, chunkSize, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Each full chunk ends with the region the next one starts with.
	for i := 0; i < len(chunks)-1; i++ {
		if len(chunks[i]) < chunkSize {
			continue
		}
		tail := chunks[i][len(chunks[i])-overlap:]
		head := chunks[i+1][:overlap]
		if tail != head {
			t.Errorf("chunks %d/%d do not share the overlap region: %q vs %q", i, i+1, tail, head)
		}
	}
}

func TestSplitCoversSource(t *testing.T) {
	text := "The sky is blue. Grass is green. Water is wet."
	chunks := Split(text, 20, 5)

	// Stitching chunks back together, dropping each chunk's leading
	// overlap, reconstructs the source.
	var b strings.Builder
	for i, c := range chunks {
		if i == 0 {
			b.WriteString(c)
			continue
		}
		b.WriteString(string([]rune(c)[5:]))
	}
	if b.String() != text {
		t.Errorf("reconstructed text = %q, want %q", b.String(), text)
	}
}
