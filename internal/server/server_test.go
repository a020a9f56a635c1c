package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/extract"
	"github.com/jmylchreest/huekit/internal/gradient"
	imageutil "github.com/jmylchreest/huekit/internal/image"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
	httputil "github.com/jmylchreest/huekit/internal/util/http"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{Rand: random.New(42), Logger: hclog.NewNullLogger()})
}

func do(t *testing.T, s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, s *Server, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
	}
	return do(t, s, method, target, body, "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func sunset(t *testing.T) palette.Palette {
	t.Helper()
	p, ok := palette.PremadeByID("sunset-vibes")
	if !ok {
		t.Fatal("sunset-vibes missing")
	}
	return p
}

// stripes encodes a PNG with equal red and blue halves.
func stripes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 10 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d", w.Code)
	}
	body := decode[map[string]any](t, w)
	if body["status"] != "ok" {
		t.Errorf("GET /health = %v", body)
	}
}

func TestUseCases(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/usecases", nil, "")
	infos := decode[[]map[string]string](t, w)
	if len(infos) != 8 || infos[0]["id"] != "branding" {
		t.Errorf("GET /usecases = %v", infos)
	}
}

func TestGeneratePalettes(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/palettes?usecase=pastel&count=3", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	got := decode[[]palette.Palette](t, w)
	if len(got) != 3 {
		t.Fatalf("got %d palettes, want 3", len(got))
	}
	for _, p := range got {
		if p.Category != palette.Pastel || p.Validate() != nil {
			t.Errorf("palette %+v is not a valid pastel palette", p)
		}
	}

	tests := []struct {
		name   string
		target string
	}{
		{"missing usecase", "/palettes"},
		{"unknown usecase", "/palettes?usecase=brutalist"},
		{"count too high", "/palettes?usecase=pastel&count=99"},
		{"count not a number", "/palettes?usecase=pastel&count=lots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, s, http.MethodGet, tt.target, nil, ""); w.Code != http.StatusBadRequest {
				t.Errorf("GET %s status = %d, want 400", tt.target, w.Code)
			}
		})
	}
}

func TestPremadeAndExplore(t *testing.T) {
	s := newTestServer(t)

	premade := decode[[]palette.Palette](t, do(t, s, http.MethodGet, "/palettes/premade", nil, ""))
	if len(premade) != 12 {
		t.Errorf("GET /palettes/premade returned %d, want 12", len(premade))
	}

	all := decode[[]palette.Palette](t, do(t, s, http.MethodGet, "/palettes/explore", nil, ""))
	if len(all) != 28 {
		t.Errorf("GET /palettes/explore returned %d, want 28", len(all))
	}

	nature := decode[[]palette.Palette](t, do(t, s, http.MethodGet, "/palettes/explore?filter=nature", nil, ""))
	for _, p := range nature {
		if p.Category != palette.Nature {
			t.Errorf("explore nature returned %s", p.Category)
		}
	}

	if w := do(t, s, http.MethodGet, "/palettes/explore?filter=nope", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", w.Code)
	}
}

func TestRegenerate(t *testing.T) {
	s := newTestServer(t)
	prev := sunset(t)

	w := doJSON(t, s, http.MethodPost, "/palettes/regenerate", regenerateRequest{
		Palette: prev,
		Locks:   []bool{true, false, false, false, true},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	got := decode[palette.Palette](t, w)
	if got.ID != prev.ID {
		t.Errorf("ID = %q, want %q", got.ID, prev.ID)
	}
	if got.Colors[0] != prev.Colors[0] || got.Colors[4] != prev.Colors[4] {
		t.Errorf("locked colours changed: %v", got.Colors)
	}

	bad := doJSON(t, s, http.MethodPost, "/palettes/regenerate", regenerateRequest{Palette: prev, Locks: []bool{true}})
	if bad.Code != http.StatusBadRequest {
		t.Errorf("short lock list status = %d, want 400", bad.Code)
	}

	short := prev.Clone()
	short.Colors = short.Colors[:3]
	if w := doJSON(t, s, http.MethodPost, "/palettes/regenerate", regenerateRequest{Palette: short}); w.Code != http.StatusBadRequest {
		t.Errorf("three-colour palette status = %d, want 400", w.Code)
	}
}

func TestHarmony(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/harmony?base=200&count=3&scheme=triadic", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	got := decode[map[string]any](t, w)
	if got["scheme"] != "triadic" {
		t.Errorf("scheme = %v", got["scheme"])
	}
	hues, _ := got["hues"].([]any)
	if len(hues) != 3 || hues[0] != float64(200) {
		t.Errorf("hues = %v", got["hues"])
	}

	for _, target := range []string{"/harmony?base=360", "/harmony?count=0", "/harmony?scheme=tetradic"} {
		if w := do(t, s, http.MethodGet, target, nil, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", target, w.Code)
		}
	}
}

func TestGradients(t *testing.T) {
	s := newTestServer(t)

	g := decode[gradient.Gradient](t, do(t, s, http.MethodGet, "/gradients/random", nil, ""))
	if err := g.Validate(); err != nil {
		t.Errorf("random gradient invalid: %v", err)
	}

	css := decode[cssResponse](t, doJSON(t, s, http.MethodPost, "/gradients/css", gradient.Gradient{
		Type:      gradient.Linear,
		Direction: gradient.ToRight,
		Stops:     []gradient.Stop{{Color: "#000000", Position: 100}, {Color: "#ffffff", Position: 0}},
	}))
	if css.CSS != "linear-gradient(to right, #ffffff 0%, #000000 100%)" {
		t.Errorf("css = %q", css.CSS)
	}
	if css.Declaration != "background: "+css.CSS+";" {
		t.Errorf("declaration = %q", css.Declaration)
	}

	one := gradient.Gradient{Type: gradient.Linear, Stops: []gradient.Stop{{Color: "#000000"}}}
	if w := doJSON(t, s, http.MethodPost, "/gradients/css", one); w.Code != http.StatusBadRequest {
		t.Errorf("single-stop gradient status = %d, want 400", w.Code)
	}

	fromPalette := decode[gradient.Gradient](t, doJSON(t, s, http.MethodPost, "/gradients/from-palette", sunset(t)))
	if len(fromPalette.Stops) != 4 || fromPalette.Stops[0].Color != "#FF6B6B" {
		t.Errorf("from-palette stops = %+v", fromPalette.Stops)
	}
}

func TestContrast(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/contrast?fg=%23000000&bg=%23FFFFFF", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	report := decode[colour.ContrastReport](t, w)
	if report.Level != colour.LevelAAA || report.Ratio < 20.9 {
		t.Errorf("report = %+v", report)
	}

	for _, target := range []string{"/contrast?fg=%23000000", "/contrast?fg=red&bg=%23ffffff"} {
		if w := do(t, s, http.MethodGet, target, nil, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", target, w.Code)
		}
	}
}

func TestExtractUpload(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "stripes.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(stripes(t)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	w := do(t, s, http.MethodPost, "/extract?colours=2", body.Bytes(), mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	got := decode[extractResponse](t, w)
	if len(got.Colors) != 2 {
		t.Fatalf("colors = %+v, want 2", got.Colors)
	}
	hexes := got.Colors[0].Hex + " " + got.Colors[1].Hex
	if !strings.Contains(hexes, "#ff0000") || !strings.Contains(hexes, "#0000ff") {
		t.Errorf("colors = %s, want red and blue", hexes)
	}
	if got.Palette != nil {
		t.Error("palette set for a two-colour extraction")
	}
}

func TestExtractDataURL(t *testing.T) {
	s := newTestServer(t)
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(stripes(t))

	w := doJSON(t, s, http.MethodPost, "/extract", extractRequest{URL: ref})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	got := decode[extractResponse](t, w)
	if len(got.Colors) != palette.Size || got.Palette == nil {
		t.Fatalf("response = %+v, want five colours and a palette", got)
	}
	if got.Palette.Name != "Extracted Palette" {
		t.Errorf("palette name = %q", got.Palette.Name)
	}
}

func TestExtractRejects(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		payload any
	}{
		{"no url", extractRequest{}},
		{"file path", extractRequest{URL: "/etc/passwd"}},
		{"loopback", extractRequest{URL: "http://127.0.0.1:8080/a.png"}},
		{"private network", extractRequest{URL: "https://10.0.0.7/a.png"}},
		{"not json", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(t, s, http.MethodPost, "/extract", tt.payload); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}

	if w := doJSON(t, s, http.MethodPost, "/extract?colours=0", extractRequest{URL: "https://example.com/a.png"}); w.Code != http.StatusBadRequest {
		t.Errorf("colours=0 status = %d, want 400", w.Code)
	}
}

// pinnedClient dials every host at addr, standing in for DNS.
func pinnedClient(addr string) *http.Client {
	return &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, addr)
		},
	}}
}

func TestExtractRedirectToPrivateHost(t *testing.T) {
	var hit atomic.Bool
	img := stripes(t)
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit.Store(true)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	defer internal.Close()

	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cat.png":
			http.Redirect(w, r, internal.URL+"/secret.png", http.StatusFound)
		default:
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(img)
		}
	}))
	defer public.Close()

	rng := random.NewLocked(random.New(42))
	s := New(Config{
		Rand:   rng,
		Logger: hclog.NewNullLogger(),
		Extractor: extract.New(extract.Config{
			Loader: &imageutil.SmartLoader{Fetch: httputil.FetchOptions{
				DenyPrivate: true,
				Client:      pinnedClient(public.Listener.Addr().String()),
			}},
			Rand: rng,
		}),
	})

	w := doJSON(t, s, http.MethodPost, "/extract", extractRequest{URL: "http://images.example/cat.png"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with an empty result", w.Code)
	}
	if got := decode[extractResponse](t, w); len(got.Colors) != 0 {
		t.Errorf("colors = %v, want none", got.Colors)
	}
	if hit.Load() {
		t.Error("redirect to a loopback address was followed")
	}

	// The same loader still fetches public images that do not redirect.
	w = doJSON(t, s, http.MethodPost, "/extract?colours=2", extractRequest{URL: "http://images.example/ok.png"})
	if got := decode[extractResponse](t, w); len(got.Colors) != 2 {
		t.Errorf("colors = %v, want 2", got.Colors)
	}
}

func TestExtractUndecodable(t *testing.T) {
	s := newTestServer(t)
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image"))

	w := doJSON(t, s, http.MethodPost, "/extract", extractRequest{URL: ref})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with an empty result", w.Code)
	}
	if got := decode[extractResponse](t, w); len(got.Colors) != 0 || got.Palette != nil {
		t.Errorf("response = %+v, want empty", got)
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/export?format=hex", sunset(t))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if got := w.Body.String(); got != "#FF6B6B\n#FEC89A\n#FFD93D\n#6BCB77\n#4D96FF" {
		t.Errorf("hex export = %q", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	w = doJSON(t, s, http.MethodPost, "/export?format=json", sunset(t))
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("json Content-Type = %q", ct)
	}

	css := doJSON(t, s, http.MethodPost, "/export", sunset(t))
	if !strings.HasPrefix(css.Body.String(), ":root {") {
		t.Errorf("default export = %q, want CSS", css.Body.String())
	}

	if w := doJSON(t, s, http.MethodPost, "/export?format=pdf", sunset(t)); w.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", w.Code)
	}
}
