package benchmark

import (
	"strconv"
	"testing"

	"github.com/blog-community-api/internal/mention"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/validation"
)

// BenchmarkExtractNames benchmarks mention candidate extraction
func BenchmarkExtractNames(b *testing.B) {
	content := "hey @Alice and @Bob, loop in @carol_w about @Alice's draft plus @dave99"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		mention.ExtractNames(content)
	}
}

// BenchmarkEncode benchmarks the write-path rewrite with resolved users
func BenchmarkEncode(b *testing.B) {
	content := "hey @Alice and @Bob, loop in @carol_w about @Alice's draft"
	users := []*models.User{
		{ID: 5, DisplayName: "Alice"},
		{ID: 7, DisplayName: "Bob"},
		{ID: 11, DisplayName: "carol_w"},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		mention.Encode(content, users)
	}
}

// BenchmarkExtractIDs benchmarks id collection across a full comment thread
func BenchmarkExtractIDs(b *testing.B) {
	// 100 comments mentioning a rotating set of 10 users
	bodies := make([]string, 100)
	for i := range bodies {
		bodies[i] = "cc @" + strconv.Itoa(i%10+1) + " re: item " + strconv.Itoa(i)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		mention.ExtractIDs(bodies)
	}
}

// BenchmarkDecode benchmarks the read-path rewrite to profile links
func BenchmarkDecode(b *testing.B) {
	content := "cc @5 and @7, @11 already replied to @5"
	names := map[int64]string{
		5:  "Alice",
		7:  "Bob",
		11: "carol_w",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		mention.Decode(content, names)
	}
}

// BenchmarkValidateComment benchmarks the comment validation pipeline
func BenchmarkValidateComment(b *testing.B) {
	content := "hey @Alice, the deadline moved to Friday"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidateComment(1, content)
	}
}
