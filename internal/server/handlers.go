package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/export"
	"github.com/jmylchreest/huekit/internal/extract"
	"github.com/jmylchreest/huekit/internal/gradient"
	"github.com/jmylchreest/huekit/internal/harmony"
	imageutil "github.com/jmylchreest/huekit/internal/image"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/security"
	"github.com/jmylchreest/huekit/internal/version"
)

const (
	maxPalettesPerRequest = 20
	maxHarmonyHues        = 12
	defaultHarmonyHues    = 5
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// intQuery reads a bounded integer query parameter.
func intQuery(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", name, lo, hi)
	}
	return n, nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
}

func (s *Server) useCases(c *gin.Context) {
	c.JSON(http.StatusOK, palette.UseCases())
}

func (s *Server) generatePalettes(c *gin.Context) {
	tag := c.Query("usecase")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "usecase required"})
		return
	}
	u, err := palette.ParseUseCase(tag)
	if err != nil {
		badRequest(c, err)
		return
	}
	count, err := intQuery(c, "count", 1, 1, maxPalettesPerRequest)
	if err != nil {
		badRequest(c, err)
		return
	}

	out := make([]palette.Palette, count)
	for i := range out {
		out[i] = s.palettes.Generate(u)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) premade(c *gin.Context) {
	c.JSON(http.StatusOK, palette.Premade())
}

func (s *Server) explore(c *gin.Context) {
	f, err := palette.ParseFilter(c.Query("filter"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, palette.Explore(s.palettes, f))
}

type regenerateRequest struct {
	Palette palette.Palette `json:"palette"`
	Locks   []bool          `json:"locks"`
}

func (s *Server) regenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Palette.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	var locks palette.Locks
	if req.Locks != nil {
		var err error
		if locks, err = palette.LocksFrom(req.Locks); err != nil {
			badRequest(c, err)
			return
		}
	}

	p, err := s.palettes.Regenerate(req.Palette, locks)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type harmonyResponse struct {
	Base   int            `json:"base"`
	Scheme harmony.Scheme `json:"scheme"`
	Hues   []int          `json:"hues"`
}

func (s *Server) getHarmony(c *gin.Context) {
	base, err := intQuery(c, "base", 0, 0, 359)
	if err != nil {
		badRequest(c, err)
		return
	}
	count, err := intQuery(c, "count", defaultHarmonyHues, 1, maxHarmonyHues)
	if err != nil {
		badRequest(c, err)
		return
	}
	scheme := harmony.Analogous
	if name := c.Query("scheme"); name != "" {
		if scheme, err = harmony.ParseScheme(name); err != nil {
			badRequest(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, harmonyResponse{
		Base:   base,
		Scheme: scheme,
		Hues:   harmony.Hues(base, count, scheme, s.palettes.Source()),
	})
}

func (s *Server) randomGradient(c *gin.Context) {
	c.JSON(http.StatusOK, s.gradients.Random())
}

type cssResponse struct {
	CSS         string `json:"css"`
	Declaration string `json:"declaration"`
}

func (s *Server) gradientCSS(c *gin.Context) {
	var g gradient.Gradient
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, err)
		return
	}
	if err := g.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, cssResponse{CSS: gradient.CSS(g), Declaration: gradient.Declaration(g)})
}

func (s *Server) gradientFromPalette(c *gin.Context) {
	var p palette.Palette
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	g, err := s.gradients.FromPalette(p)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) getContrast(c *gin.Context) {
	fg, bg := c.Query("fg"), c.Query("bg")
	if fg == "" || bg == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fg and bg required"})
		return
	}
	for _, hex := range []string{fg, bg} {
		if _, err := colour.ParseHex(hex); err != nil {
			badRequest(c, fmt.Errorf("%w: %q", err, hex))
			return
		}
	}
	c.JSON(http.StatusOK, colour.Check(fg, bg))
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Colors  []colour.Color   `json:"colors"`
	Palette *palette.Palette `json:"palette,omitempty"`
}

func (s *Server) postExtract(c *gin.Context) {
	n, err := intQuery(c, "colours", palette.Size, 1, extract.MaxColours)
	if err != nil {
		badRequest(c, err)
		return
	}

	src, err := s.extractSource(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	colors := <-s.extractor.Async(c.Request.Context(), src, n)
	resp := extractResponse{Colors: colors}
	if p, err := palette.Extracted(s.palettes.ID(), colors); err == nil {
		resp.Palette = &p
	}
	c.JSON(http.StatusOK, resp)
}

// extractSource reads a multipart "image" upload or a JSON {"url": ...} body.
func (s *Server) extractSource(c *gin.Context) (extract.Source, error) {
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > s.maxUpload {
			return extract.Source{}, fmt.Errorf("image exceeds %d bytes", s.maxUpload)
		}
		f, err := fh.Open()
		if err != nil {
			return extract.Source{}, fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, s.maxUpload))
		if err != nil {
			return extract.Source{}, fmt.Errorf("failed to read upload: %w", err)
		}
		return extract.Source{Data: data}, nil
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return extract.Source{}, errors.New("expected a multipart image upload or a JSON body with url")
	}
	if req.URL == "" {
		return extract.Source{}, errors.New("url required")
	}
	switch {
	case imageutil.IsDataURL(req.URL):
	case imageutil.IsURL(req.URL):
		if err := security.ValidateRemoteURL(req.URL); err != nil {
			return extract.Source{}, err
		}
	default:
		return extract.Source{}, errors.New("url must be http(s) or a data: URL")
	}
	return extract.Source{Ref: req.URL}, nil
}

func (s *Server) postExport(c *gin.Context) {
	format := export.FormatCSS
	if name := c.Query("format"); name != "" {
		var err error
		if format, err = export.ParseFormat(name); err != nil {
			badRequest(c, err)
			return
		}
	}

	var p palette.Palette
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	out, err := export.Render(p, format)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == export.FormatJSON {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, []byte(out))
}
