package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/texcache"
	"github.com/san-kum/orrery/internal/texture"
)

func textureSettings(cmd *cobra.Command) (int, uint64) {
	res := resolution
	if res <= 0 {
		res = cfg.Texture.Resolution
	}
	sd := seed
	if !cmd.Flags().Changed("seed") {
		sd = cfg.Texture.Seed
	}
	return res, sd
}

// textureRequest builds the request for a catalog body, or from the
// type/color flags when no body is named.
func textureRequest(cmd *cobra.Command, args []string) (texture.Request, string, error) {
	res, sd := textureSettings(cmd)
	if len(args) == 0 {
		if texType == "" {
			texType = string(texture.Rocky)
		}
		t, err := texture.ParseType(texType)
		if err != nil {
			return texture.Request{}, "", err
		}
		return texture.Request{
			BaseColor:      baseColor,
			Type:           t,
			NoiseIntensity: noise,
			Resolution:     res,
			Detail:         detail,
			Moon:           moon,
			Seed:           sd,
		}, string(t), nil
	}

	id := args[0]
	b, ok := catalog.Lookup(id)
	if !ok {
		return texture.Request{}, "", fmt.Errorf("unknown body: %s (available: %v)", id, catalog.IDs())
	}
	if rings {
		req, ok := b.RingsRequest(res, sd)
		if !ok {
			return texture.Request{}, "", fmt.Errorf("%s has no rings", id)
		}
		return req, id + "_rings", nil
	}
	if !b.Textured() {
		return texture.Request{}, "", fmt.Errorf("%s has no surface texture", id)
	}
	return b.TextureRequest(res, sd), id, nil
}

func writeTexture(cmd *cobra.Command, args []string) error {
	req, name, err := textureRequest(cmd, args)
	if err != nil {
		return err
	}
	start := time.Now()
	img, err := texture.Generate(req)
	if err != nil {
		return err
	}
	log.Debug("synthesized", "texture", name, "res", req.Resolution, "took", time.Since(start))

	path := pngPath
	if path == "" {
		path = name + ".png"
	}
	if err := export.SavePNG(path, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

type bakeItem struct {
	body  string
	rings bool
	req   texture.Request
}

func bakeTextures(cmd *cobra.Command, args []string) error {
	res, sd := textureSettings(cmd)
	n := workers
	if n <= 0 {
		n = cfg.Texture.Workers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	var items []bakeItem
	for _, b := range catalog.Bodies() {
		if b.Textured() {
			items = append(items, bakeItem{body: b.ID, req: b.TextureRequest(res, sd)})
		}
		if req, ok := b.RingsRequest(res, sd); ok {
			items = append(items, bakeItem{body: b.ID, rings: true, req: req})
		}
	}
	reqs := make([]texture.Request, len(items))
	for i, it := range items {
		reqs[i] = it.req
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cache := texcache.New(len(reqs))
	start := time.Now()
	log.Info("baking", "textures", len(reqs), "res", res, "workers", n)
	if err := cache.Bake(ctx, reqs, n); err != nil {
		return err
	}

	textures := make([]storage.Texture, 0, len(items))
	for _, it := range items {
		img, err := cache.Get(it.req)
		if err != nil {
			return err
		}
		textures = append(textures, storage.Texture{Body: it.body, Rings: it.rings, Request: it.req, Image: img})
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	bakeID, err := st.Save(sd, res, textures)
	if err != nil {
		return err
	}
	fmt.Printf("baked %d textures in %s: %s\n", len(textures), time.Since(start).Round(time.Millisecond), bakeID)
	return nil
}

func listBakes(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	bakes, err := st.List()
	if err != nil {
		return err
	}
	if len(bakes) == 0 {
		fmt.Println("no bakes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tRES\tSEED\tTEXTURES")
	for _, b := range bakes {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			b.ID,
			b.Timestamp.Format("2006-01-02 15:04:05"),
			b.Resolution,
			b.Seed,
			len(b.Textures),
		)
	}
	return w.Flush()
}
