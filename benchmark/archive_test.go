// Package benchmark measures the hot read endpoints against a running
// backend. Start the server, log in, and pass the session cookie:
//
//	ARCHIVE_BENCH_URL=http://localhost:5006 \
//	ARCHIVE_BENCH_COOKIE="session=eyJhbGciOi..." \
//	go test -bench . ./benchmark/
package benchmark

import (
	"net/http"
	"os"
	"testing"
)

func benchURL() string {
	if url := os.Getenv("ARCHIVE_BENCH_URL"); url != "" {
		return url
	}
	return "http://localhost:5006"
}

func benchGet(b *testing.B, path string) {
	cookie := os.Getenv("ARCHIVE_BENCH_COOKIE")
	if cookie == "" {
		b.Skip("Set ARCHIVE_BENCH_COOKIE to a logged-in session cookie.")
	}

	url := benchURL() + path

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, _ := http.NewRequest("GET", url, nil)
		r.Header.Add("Cookie", cookie)
		resp, err := http.DefaultClient.Do(r)
		if err != nil {
			b.Fatal(err)
		}
		_ = resp.Body.Close()
	}
}

func BenchmarkArchiveList(b *testing.B) {
	// The list query computes warrant and card columns per row; the
	// filtered variant adds the expiry subquery on top.
	b.Run("first page", func(b *testing.B) {
		benchGet(b, "/api/employees?page=1&page_size=20")
	})
	b.Run("expiring filter", func(b *testing.B) {
		benchGet(b, "/api/employees?filter_type=expiring_soon_or_expired&page=1&page_size=20")
	})
}

func BenchmarkDashboardCounts(b *testing.B) {
	benchGet(b, "/api/dashboard_counts")
}
