package perf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codewithboateng/sentrylint/internal/rules"
	"github.com/codewithboateng/sentrylint/internal/scan"
	"github.com/codewithboateng/sentrylint/internal/settings"
)

const benchSample = `import hashlib

def fingerprint(data):
    return hashlib.new("MD5", data).hexdigest()

API_BASE = "http://api.example.com/v1"
MIN_PROTOCOL = "SSLv3"

def install(path):
    os.chmod(path, 0777)
`

func BenchmarkScanTree_Small(b *testing.B) {
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bench.py"), []byte(benchSample), 0o644); err != nil {
		b.Fatal(err)
	}

	sc := scan.New(settings.Default(), rules.Publish(rules.Builtin()), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run, err := sc.ScanTree(dir)
		if err != nil {
			b.Fatal(err)
		}
		if len(run.Findings) == 0 {
			b.Fatal("no findings on the bench sample")
		}
	}
}

func BenchmarkScanFile_Large(b *testing.B) {
	// ~200KB of repetitive source keeps the regex engine honest
	src := strings.Repeat(benchSample, 1000)
	sc := scan.New(settings.Default(), rules.Publish(rules.Builtin()), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fnds := sc.ScanFile("bench.py", src, 0)
		if len(fnds) == 0 {
			b.Fatal("no findings")
		}
	}
}

func BenchmarkFixReconcile(b *testing.B) {
	src := strings.Repeat(benchSample, 200)
	sc := scan.New(settings.Default(), rules.Publish(rules.Builtin()), nil)
	fnds := sc.ScanFile("bench.py", src, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		set := scan.BuildFixSet(fnds)
		kept, _ := set.Reconcile()
		if len(kept) == 0 {
			b.Fatal("no fixes survived reconciliation")
		}
	}
}
