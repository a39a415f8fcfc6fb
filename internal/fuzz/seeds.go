package fuzztests

import "testing"

const maxSeedBytes = 1 << 12 // 4 KiB

// corpusSeeds is a spread of valid and deliberately broken scripts.
// Broken seeds steer the fuzzer toward the error-recovery paths.
var corpusSeeds = []string{
	"",
	"tuple point(x = 0, y = 0)\n",
	"pub tuple pair(first, second)\n",
	"tuple point(x = 0, y = 0)\nlet p = point({x: 1})\nshow point(p, x)\n",
	"tuple point(x = 0, y = 0)\nlet p = point({_: 9})\nshow point(p, {y: 2})\n",
	"tuple t(a)\nshow match t({a: 1}) { t({a: v}) => v, _ => 0 }\n",
	"let v = (1, 2, 3)\nshow v\n",
	"show {x: 1, y: \"two\", z: true}\n",
	"show match 1 { 0 => false, _ => true }\n",
	// broken on purpose
	"tuple (x)\n",
	"tuple t(x = )\n",
	"let = 3\n",
	"show point(p, {x: 1}\n",
	"tuple t(a) show t({a: 1)}\n",
	"match { } =>\n",
	"((((((((((1))))))))))\n",
	"{_: {_: {_: 1}}}\n",
	"\"unterminated\n",
	"let x = 9999999999999999999999\n",
}

func addCorpusSeeds(f *testing.F) {
	f.Helper()
	for _, seed := range corpusSeeds {
		f.Add(clampSeed([]byte(seed)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
