package scanner

import (
	"path/filepath"
	"strconv"
	"testing"
)

// prepareBenchmarkDirectory 创建目录扫描基准测试数据。
func prepareBenchmarkDirectory(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	for i := 0; i < 200; i++ {
		name := "Service" + strconv.Itoa(i)
		writeFixtureFile(b, filepath.Join(tempDir, "pkg", name+".java"), javaClass(name,
			javaMethod("register", 40, "    bus.addCallback(new Callback() {});", "    // TODO tune"),
			javaMethod("process", 120),
			javaMethod("getName", 3),
		))
	}
	return tempDir
}

// BenchmarkScanDirectory 评估多 worker 下的目录扫描性能。
func BenchmarkScanDirectory(b *testing.B) {
	root := prepareBenchmarkDirectory(b)
	service := newService(b, Options{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPath(root); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}

// BenchmarkScanDirectorySingleWorker 作为串行基线。
func BenchmarkScanDirectorySingleWorker(b *testing.B) {
	root := prepareBenchmarkDirectory(b)
	service := newService(b, Options{Workers: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPath(root); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}
