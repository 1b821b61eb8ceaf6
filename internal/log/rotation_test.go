package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")

	rf, err := NewRotatingFile(path, 32, 2)
	if err != nil {
		t.Fatalf("NewRotatingFile failed: %v", err)
	}
	defer rf.Close()

	if _, err := rf.Write([]byte(strings.Repeat("a", 20))); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	// 20 + 20 > 32 forces a rotation before this write lands.
	if _, err := rf.Write([]byte(strings.Repeat("b", 20))); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	live, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read live file: %v", err)
	}
	if string(live) != strings.Repeat("b", 20) {
		t.Errorf("live file = %q, want the post-rotation write", live)
	}

	backup, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != strings.Repeat("a", 20) {
		t.Errorf("backup = %q, want the pre-rotation write", backup)
	}
}

func TestRotatingFile_DropsOldestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")

	rf, err := NewRotatingFile(path, 4, 1)
	if err != nil {
		t.Fatalf("NewRotatingFile failed: %v", err)
	}
	defer rf.Close()

	for _, chunk := range []string{"1111", "2222", "3333"} {
		if _, err := rf.Write([]byte(chunk)); err != nil {
			t.Fatalf("write %q failed: %v", chunk, err)
		}
	}

	// maxBackups=1 keeps only the immediately previous file.
	backup, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "2222" {
		t.Errorf("backup = %q, want %q", backup, "2222")
	}
	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Errorf("stale backup survived: %v", err)
	}
}

func TestRotatingFile_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "trace.log")

	rf, err := NewRotatingFile(path, 1024, 1)
	if err != nil {
		t.Fatalf("NewRotatingFile failed: %v", err)
	}
	defer rf.Close()

	if _, err := rf.Write([]byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("trace file missing: %v", err)
	}
}
