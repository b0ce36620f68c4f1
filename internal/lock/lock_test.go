package lock

import "testing"

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	held, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir); err == nil {
		t.Fatal("expected a second Acquire on the same dir to fail")
	}

	if err := held.Release(); err != nil {
		t.Fatal(err)
	}

	second, err := Acquire(dir)
	if err != nil {
		t.Fatalf("expected Acquire to succeed after Release: %v", err)
	}
	_ = second.Release()
}

func TestReleaseNilIsSafe(t *testing.T) {
	var held *TargetDir
	if err := held.Release(); err != nil {
		t.Fatal(err)
	}
}
