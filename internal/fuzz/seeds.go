package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// formattableSeeds format cleanly at the default width; the formatter
// harness relies on that.
var formattableSeeds = []string{
	"",
	"foo(1,2,3)\n",
	"foo(\n  1,\n  2,\n  3\n)\n",
	"x = 1 # c\n\n\ny = 2\n",
	"foo(<<~TXT)\n  hi\nTXT\n",
	"puts 'hello'\nconfig = { name: 'x', size: 3 }\nrender :show,\n  status: 200\n",
	"result = items\n  .select { |i| i.ok? }\n  .map(&:name)\n",
	"ok = alpha &&\n  beta\n",
	"f = ->(x) { x + 1 }\n",
	"foo.each do |x|\n\n  # note\n  bar x\nend\n",
	"list = [\n  1, # one\n  # between\n  2,\n]\n",
	"=begin\ndocs here\n=end\nx = 1\n",
	"puts DATA.read\n__END__\nraw   text\n# not a comment\n",
	"if a\n\n\n  b\nelsif c\n  d\n\nelse\n  e\nend\nx\n",
	"begin\n  risky\nrescue ArgumentError, TypeError => e\n  handle(e)\nelse\n  ok\nensure\n  cleanup\nend\n",
	"case x\nwhen 1, 2 then :low\nelse :high\nend\n",
	"!#\n0#",
	"x = # a\n  5 # b\n",
	"; # c\nx = 1\n",
	"call_a; call_b # t\n",
	"foo do |a,\n  b|\n  a\nend\n",
	"#\f",
	"x = {\n}\n",
}

// brokenSeeds are inputs the front end must reject without panicking.
var brokenSeeds = []string{
	"foo(1,\n",
	"def x\n",
	"x = <<~EOS\nnever closed\n",
	"\"unterminated\n",
	"=begin\nno end\n",
	"class << \n",
	"{ a: ]\n",
	"?\\\n",
}

func addSeeds(f *testing.F, broken bool) {
	for _, s := range formattableSeeds {
		f.Add(clampSeed([]byte(s)))
	}
	if !broken {
		return
	}
	for _, s := range brokenSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
