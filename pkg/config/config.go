// Package config loads the YAML settings file. Every field is optional;
// missing values take the stock defaults.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/teapot/pkg/math3d"
	"github.com/taigrr/teapot/pkg/render"
)

// Config is the full settings document.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Assets AssetsConfig `yaml:"assets"`
	Scene  SceneConfig  `yaml:"scene"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	Scale   int    `yaml:"scale,omitempty"`
	FPS     int    `yaml:"fps"`
	Display string `yaml:"display"` // window, terminal or png
	ShowFPS *bool  `yaml:"showFPS,omitempty"`
}

type CameraConfig struct {
	FOVDegrees float64 `yaml:"fovDegrees"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

type RenderConfig struct {
	Winding        string      `yaml:"winding"` // ccw or cw
	Clear          string      `yaml:"clear"`   // "r,g,b" or #RRGGBB
	Wireframe      bool        `yaml:"wireframe,omitempty"`
	MinAreaOutside float64     `yaml:"minAreaOutside"`
	MinAreaInside  float64     `yaml:"minAreaInside"`
	MaxPrimitives  int         `yaml:"maxPrimitives"`
	Ambient        *float64    `yaml:"ambient,omitempty"`
	LightOffset    *[3]float64 `yaml:"lightOffset,omitempty"`
	BaseColor      string      `yaml:"baseColor,omitempty"`
	WireColor      string      `yaml:"wireColor,omitempty"`
}

type AssetsConfig struct {
	Model         string  `yaml:"model,omitempty"`
	Pak           string  `yaml:"pak,omitempty"`
	Asset         string  `yaml:"asset,omitempty"`
	NormalizeSize float64 `yaml:"normalizeSize"`
}

type SceneConfig struct {
	Start      string `yaml:"start"` // teapot or game
	ShowGround bool   `yaml:"showGround,omitempty"`
}

// Default returns a config with every default filled in.
func Default() Config {
	var c Config
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Window.Width == 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height == 0 {
		c.Window.Height = 720
	}
	if c.Window.Title == "" {
		c.Window.Title = "i am a teapot"
	}
	if c.Window.Scale == 0 {
		c.Window.Scale = 1
	}
	if c.Window.FPS == 0 {
		c.Window.FPS = 60
	}
	if c.Window.Display == "" {
		c.Window.Display = "window"
	}
	if c.Window.ShowFPS == nil {
		show := true
		c.Window.ShowFPS = &show
	}

	t := render.DefaultTuning()
	if c.Camera.FOVDegrees == 0 {
		c.Camera.FOVDegrees = t.FOV * 180 / math.Pi
	}
	if c.Camera.Near == 0 {
		c.Camera.Near = t.NearPlane
	}
	if c.Camera.Far == 0 {
		c.Camera.Far = t.FarPlane
	}

	if c.Render.Winding == "" {
		c.Render.Winding = render.CounterClockwise.String()
	}
	if c.Render.Clear == "" {
		c.Render.Clear = "0,0,0"
	}
	if c.Render.MinAreaOutside == 0 {
		c.Render.MinAreaOutside = t.MinAreaOutside
	}
	if c.Render.MinAreaInside == 0 {
		c.Render.MinAreaInside = t.MinAreaInside
	}
	if c.Render.MaxPrimitives == 0 {
		c.Render.MaxPrimitives = t.MaxPrimitives
	}
	if c.Render.Ambient == nil {
		ambient := t.Ambient
		c.Render.Ambient = &ambient
	}
	if c.Render.LightOffset == nil {
		offset := [3]float64{t.LightOffset.X, t.LightOffset.Y, t.LightOffset.Z}
		c.Render.LightOffset = &offset
	}

	if c.Assets.NormalizeSize == 0 {
		c.Assets.NormalizeSize = 2
	}
	if c.Scene.Start == "" {
		c.Scene.Start = "teapot"
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height)
	case c.Window.FPS < 0:
		return fmt.Errorf("fps %d is negative", c.Window.FPS)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("clip planes near=%v far=%v: need 0 < near < far", c.Camera.Near, c.Camera.Far)
	case c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180:
		return fmt.Errorf("fovDegrees %v outside (0, 180)", c.Camera.FOVDegrees)
	case c.Render.MaxPrimitives < 0:
		return fmt.Errorf("maxPrimitives %d is negative", c.Render.MaxPrimitives)
	}
	if _, err := render.ParseWinding(c.Render.Winding); err != nil {
		return err
	}
	if _, err := render.ParseColor(c.Render.Clear); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Tuning converts the render and camera sections to object renderer
// tuning.
func (c Config) Tuning() (render.Tuning, error) {
	t := render.DefaultTuning()
	t.MinAreaOutside = c.Render.MinAreaOutside
	t.MinAreaInside = c.Render.MinAreaInside
	t.MaxPrimitives = c.Render.MaxPrimitives
	t.NearPlane = c.Camera.Near
	t.FarPlane = c.Camera.Far
	t.FOV = c.Camera.FOVDegrees * math.Pi / 180
	if c.Render.Ambient != nil {
		t.Ambient = *c.Render.Ambient
	}
	if o := c.Render.LightOffset; o != nil {
		t.LightOffset = math3d.V3(o[0], o[1], o[2])
	}
	if c.Render.BaseColor != "" {
		col, err := render.ParseColor(c.Render.BaseColor)
		if err != nil {
			return t, fmt.Errorf("baseColor: %w", err)
		}
		t.BaseColor = col
	}
	if c.Render.WireColor != "" {
		col, err := render.ParseColor(c.Render.WireColor)
		if err != nil {
			return t, fmt.Errorf("wireColor: %w", err)
		}
		t.WireColor = col
	}
	return t, nil
}

// ShowFPS reports whether the FPS overlay is enabled.
func (c Config) ShowFPS() bool {
	return c.Window.ShowFPS == nil || *c.Window.ShowFPS
}

// Load reads and normalizes a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write stores c, with defaults filled in, as YAML.
func Write(path string, c Config) error {
	c.normalize()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	return nil
}
