package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"

	"sanskrit-lang/impl/internal/langerr"
)

func TestGanita(t *testing.T) {
	cases := []struct{ src, want string }{
		{"मुद्रण(गणित.पाई)", "3.141592653589793"},
		{"मुद्रण(गणित.घात(2, 10), गणित.घात(2, -1), गणित.घात(2.0, 2))", "1024 0.5 4.0"},
		{"मुद्रण(गणित.वर्गित(1.5), गणित.वर्गमूल(16), गणित.निरपेक्ष(-3), गणित.निरपेक्ष(-2.5))", "2.25 4.0 3 2.5"},
		{"मुद्रण(गणित.अधःसीमा(2.7), गणित.ऊर्ध्वसीमा(2.1), गणित.पूर्णांकन(2.5), गणित.पूर्णांकन(3.5))", "2 3 2 4"},
		{"मुद्रण(गणित.अधिकतम(3, 9, 2), गणित.न्यूनतम([4, 1, 7]))", "9 1"},
		{"मुद्रण(गणित.क्रमगुणित(5), गणित.महत्तम_समापवर्तक(12, 18))", "120 6"},
		{"मुद्रण(गणित.अभाज्य(13), गणित.अभाज्य(15), गणित.अभाज्य(1))", "सत्य असत्य असत्य"},
		{"मुद्रण(गणित.ज्या(0), गणित.कोज्या(0), गणित.घातांक(0), गणित.लघुगणक(1))", "0.0 1.0 1.0 0.0"},
		{"मुद्रण(गणित.यादृच्छिक(4, 4))", "4"},
		{"धारणा r = गणित.यादृच्छिक()\nमुद्रण(r >= 0 च r < 1)", "सत्य"},
		{"मुद्रण(गणित.यादृच्छिक(0, 9223372036854775807) >= 0)", "सत्य"},
		{"धारणा lo = -9223372036854775807 - 1\nमुद्रण(गणित.यादृच्छिक(lo, 9223372036854775807) >= lo)", "सत्य"},
		{"मुद्रण(गणित.यादृच्छिक(9223372036854775807, 9223372036854775807))", "9223372036854775807"},
		{"मुद्रण(गणित.घात(2, 62), गणित.घात(-2, 63), गणित.घात(3, 0), गणित.घात(1, 10000000000000))", "4611686018427387904 -9223372036854775808 1 1"},
		{"मुद्रण(गणित.निरपेक्ष(-9223372036854775807))", "9223372036854775807"},
		{"मुद्रण(गणित.अधःसीमा(-गणित.घात(2.0, 63)))", "-9223372036854775808"},
		{"मुद्रण(गणित.अभाज्य(1000000007), गणित.अभाज्य(9223372036854775807))", "सत्य असत्य"},
	}
	for _, c := range cases {
		got, err := run(t, "आयात गणित\n"+c.src)
		if err != nil {
			t.Errorf("%s: %v", c.src, err)
			continue
		}
		if got != c.want+"\n" {
			t.Errorf("%s = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestGanitaErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind langerr.Kind
	}{
		{"गणित.वर्गमूल(-1)", langerr.Value},
		{"गणित.लघुगणक(0)", langerr.Value},
		{"गणित.क्रमगुणित(-1)", langerr.Value},
		{"गणित.वर्गित('क')", langerr.Type},
		{"गणित.घात(1)", langerr.Runtime},
		{"गणित.अधिकतम()", langerr.Value},
		{"गणित.गुम", langerr.Attribute},
		{"गणित.घात(2, 63)", langerr.Value},
		{"गणित.घात(2, 64)", langerr.Value},
		{"गणित.घात(2, 10000000000000)", langerr.Value},
		{"गणित.निरपेक्ष(-9223372036854775807 - 1)", langerr.Value},
		{"गणित.अधःसीमा(गणित.घात(10.0, 300))", langerr.Value},
		{"गणित.पूर्णांकन(गणित.घात(2.0, 63))", langerr.Value},
		{"गणित.ऊर्ध्वसीमा(-गणित.घात(10.0, 19))", langerr.Value},
	}
	for _, c := range cases {
		_, err := run(t, "आयात गणित\n"+c.src)
		expectKind(t, err, c.kind)
	}
}

func TestIsPrime(t *testing.T) {
	for n, want := range map[int64]bool{
		-7: false, 0: false, 2: true, 4: false, 97: true,
		3037000493: true, 9223372036854775807: false,
	} {
		if got := isPrime(n); got != want {
			t.Errorf("isPrime(%d) = %v, want %v", n, got, want)
		}
	}
	if testing.Short() {
		t.Skip("trial division up to 2^31.5")
	}
	// The loop bound must not wrap for primes just under 2^63.
	if !isPrime(9223372036854775783) {
		t.Error("isPrime(2^63-25) = false")
	}
}

func TestShabda(t *testing.T) {
	cases := []struct{ src, want string }{
		{"शब्द.उच्च('abc'), शब्द.लघु('ABC'), शब्द.प्रथम_उच्च('hELLO'), शब्द.शीर्षक('hello world')", "ABC abc Hello Hello World"},
		{"शब्द.विभाजन('a,b,c', ','), शब्द.विभाजन('x y')", `["a", "b", "c"] ["x", "y"]`},
		{"शब्द.संधारण([1, 'क', 2], '-'), शब्द.संधारण(['a', 'b'])", "1-क-2 ab"},
		{"शब्द.खोज('नमस्ते', 'स्ते'), शब्द.खोज('abc', 'z')", "2 -1"},
		{"शब्द.उलटा('abc'), शब्द.खण्ड('नमस्ते', 0, 2), शब्द.खण्ड('abcdef', -2)", "cba नम ef"},
		{"शब्द.लम्बाई('नमस्ते'), शब्द.सफाई('  x  '), शब्द.स्थान_बदल('aaa', 'a', 'b', 2)", "6 x bba"},
		{"शब्द.आरम्भ_जाँच('नमस्ते', 'नम'), शब्द.अन्त_जाँच('abc', 'x')", "सत्य असत्य"},
	}
	for _, c := range cases {
		got, err := run(t, "आयात शब्द\nमुद्रण("+c.src+")")
		if err != nil {
			t.Errorf("%s: %v", c.src, err)
			continue
		}
		if got != c.want+"\n" {
			t.Errorf("%s = %q, want %q", c.src, got, c.want)
		}
	}

	_, err := run(t, "आयात शब्द\nशब्द.उच्च(1)")
	expectKind(t, err, langerr.Type)
}

func TestPraveshFiles(t *testing.T) {
	fs := memfs.New()
	src := `आयात प्रवेश
प्रवेश.पत्र_लेखन('/tmp/क.txt', 'नमस्ते')
प्रवेश.पत्र_योजन('/tmp/क.txt', ' संसार')
मुद्रण(प्रवेश.पत्र_पठन('/tmp/क.txt'))
मुद्रण(प्रवेश.पत्र_अस्ति('/tmp/क.txt'))
प्रवेश.पत्र_लेखन('/tmp/ख.txt', 42)
प्रवेश.पत्र_निष्कासन('/tmp/क.txt')
मुद्रण(प्रवेश.पत्र_अस्ति('/tmp/क.txt'))`
	got, err := run(t, src, WithFS(fs))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("नमस्ते संसार\nसत्य\nअसत्य\n", got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	data, err := util.ReadFile(fs, "/tmp/ख.txt")
	if err != nil || string(data) != "42" {
		t.Errorf("written file = %q, %v", data, err)
	}

	_, err = run(t, "आयात प्रवेश\nप्रवेश.पत्र_पठन('/नहीं/है')", WithFS(fs))
	expectKind(t, err, langerr.Runtime)
}

func TestPraveshInput(t *testing.T) {
	var out bytes.Buffer
	ev := New(&out, WithInput(strings.NewReader("राम\n")), WithErrorWriter(&bytes.Buffer{}), WithFS(memfs.New()))
	src := "आयात प्रवेश\nधारणा n = प्रवेश.पाठ('नाम? ')\nप्रवेश.मुद्रण('नमस्ते ' + n)\nप्रवेश.पाठ()"
	err := ev.Execute(src)
	if diff := cmp.Diff("नाम? नमस्ते राम\n", out.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	expectKind(t, err, langerr.Runtime)
}

func TestImportBindsFreshModule(t *testing.T) {
	ev, _, _ := newTest()
	if err := ev.Execute("आयात गणित"); err != nil {
		t.Fatal(err)
	}
	first, _ := ev.Lookup("गणित")
	if err := ev.Execute("आयात गणित"); err != nil {
		t.Fatal(err)
	}
	second, _ := ev.Lookup("गणित")
	if first == second {
		t.Error("import reused the module value")
	}
	if m, ok := second.(*Module); !ok || m.Members.Size() == 0 {
		t.Errorf("module = %#v", second)
	}
}
