package engine

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractHeadersSingleLine(t *testing.T) {
	input := "main.o: main.c main.h util.h\n"
	got, err := ExtractHeaders(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"main.h", "util.h"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractHeadersContinuation(t *testing.T) {
	input := "main.o: main.c \\\n  main.h \\\n  /usr/include/stdio.h util.hpp\n"
	got, err := ExtractHeaders(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"main.h", "/usr/include/stdio.h", "util.hpp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractHeadersEscapedSpace(t *testing.T) {
	input := "main.o: main.c /opt/My\\ Project/inc/foo.h\n"
	got, err := ExtractHeaders(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/opt/My Project/inc/foo.h"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractHeadersIgnoresNonHeaderTokens(t *testing.T) {
	input := "main.o: main.c README.md Makefile\n"
	got, err := ExtractHeaders(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
