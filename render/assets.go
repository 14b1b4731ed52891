package render

import (
	"context"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/reels"
)

// AssetLoadError reports an image that could not be decoded.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// Assets holds every image the machine draws. Symbols keep the order of
// Config.SymbolPaths.
type Assets struct {
	Symbols    []*ebiten.Image
	Background *ebiten.Image
}

// Textures returns the symbol images as engine texture handles.
func (a *Assets) Textures() []reels.Texture {
	out := make([]reels.Texture, len(a.Symbols))
	for i, img := range a.Symbols {
		out[i] = img
	}
	return out
}

// LoadAssets decodes the symbol and background images concurrently, relative
// to root. Nothing is returned unless every image loaded; the engine must not
// start with missing textures.
func LoadAssets(ctx context.Context, root string, cfg reels.Config) (*Assets, error) {
	if len(cfg.SymbolPaths) == 0 {
		return nil, &AssetLoadError{Path: root, Err: fmt.Errorf("no symbol paths configured")}
	}

	a := &Assets{Symbols: make([]*ebiten.Image, len(cfg.SymbolPaths))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, p := range cfg.SymbolPaths {
		g.Go(func() error {
			img, err := loadImage(ctx, filepath.Join(root, p))
			if err != nil {
				return err
			}
			a.Symbols[i] = img
			return nil
		})
	}
	if cfg.Background != "" {
		g.Go(func() error {
			img, err := loadImage(ctx, filepath.Join(root, cfg.Background))
			if err != nil {
				return err
			}
			a.Background = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}

func loadImage(ctx context.Context, path string) (*ebiten.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	return img, nil
}
