package random

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(360), b.IntN(360); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestBetween(t *testing.T) {
	rng := New(1)
	for i := 0; i < 1000; i++ {
		v := Between(rng, 5, 25)
		if v < 5 || v >= 25 {
			t.Fatalf("Between(5, 25) = %v, out of range", v)
		}
	}
}

func TestPick(t *testing.T) {
	rng := New(3)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Pick(rng, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("Pick() covered %d of %d items", len(seen), len(items))
	}
}

func TestReader(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	if _, err := io.ReadFull(Reader(New(9)), a); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if _, err := io.ReadFull(Reader(New(9)), b); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Reader() with equal seeds produced different bytes")
	}
}

func TestLockedConcurrent(t *testing.T) {
	src := NewLocked(New(11))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = src.IntN(10)
				_ = src.Float64()
			}
		}()
	}
	wg.Wait()
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "random", want: ModeRandom},
		{input: "manual", want: ModeManual},
		{input: "content", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConfigSeed(t *testing.T) {
	seed, err := Config{Mode: ModeManual, Value: 1234}.Seed()
	if err != nil || seed != 1234 {
		t.Errorf("Seed() = %d, %v; want 1234, nil", seed, err)
	}
	if _, err := (Config{Mode: "bogus"}).Seed(); err == nil {
		t.Error("Seed() with unknown mode should fail")
	}
}
