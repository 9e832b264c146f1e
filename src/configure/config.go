package configure

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrInvalidLoopCount   = fmt.Errorf("loop_count must be positive")
	ErrInvalidJpegQuality = fmt.Errorf("jpeg_quality must be between 1 and 100")
	ErrInvalidPreviewSize = fmt.Errorf("preview size must not be negative")
	ErrInvalidAction      = fmt.Errorf("unknown action")
)

type Action string

const (
	ActionList    Action = "list"
	ActionShow    Action = "show"
	ActionGIF     Action = "gif"
	ActionVideo   Action = "video"
	ActionPreview Action = "preview"
	ActionHelp    Action = "help"
	ActionHints   Action = "hints"
)

func checkErr(err error) {
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
}

func New() *Config {
	cfg, err := Load(pflag.CommandLine, os.Args[1:])
	checkErr(err)

	initLogging(cfg.LogLevel, cfg.NoLogs)

	return cfg
}

func Defaults() Config {
	return Config{
		LogLevel:        "info",
		Config:          "config.yaml",
		IncludeJPG:      true,
		OutputDir:       desktop(),
		WorkingDir:      ".",
		FrameRate:       "24",
		Duration:        "0.2",
		LoopCount:       1000,
		JpegQuality:     95,
		PreviewDuration: "0.3",
		Action:          ActionList,
		Select:          -1,
	}
}

// Load builds the config from defaults, an optional yaml file, PINANIMATE_*
// environment variables and the flags in args, later sources winning.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	config := viper.New()
	config.SetConfigType("yaml")

	b, err := json.Marshal(Defaults())
	if err != nil {
		return nil, err
	}

	tmp := viper.New()
	tmp.SetConfigType("json")
	if err := tmp.ReadConfig(bytes.NewBuffer(b)); err != nil {
		return nil, err
	}
	if err := config.MergeConfigMap(tmp.AllSettings()); err != nil {
		return nil, err
	}

	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for key, name := range flagKeys {
		if err := config.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, err
		}
	}

	config.SetConfigFile(config.GetString("config"))
	if err := config.ReadInConfig(); err == nil {
		if err := config.MergeInConfig(); err != nil {
			return nil, err
		}
	}

	config.SetEnvPrefix("PINANIMATE")
	config.AllowEmptyEnv(true)
	config.AutomaticEnv()

	cfg := Config{}
	if err := config.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, cfg.Validate()
}

var flagKeys = map[string]string{
	"config":           "config",
	"log_level":        "log-level",
	"noheader":         "noheader",
	"nologs":           "nologs",
	"dir":              "dir",
	"include_jpg":      "include-jpg",
	"output_dir":       "output-dir",
	"working_dir":      "working-dir",
	"fps":              "fps",
	"duration":         "duration",
	"loop_count":       "loop-count",
	"jpeg_quality":     "jpeg-quality",
	"preview_width":    "preview-width",
	"preview_height":   "preview-height",
	"preview_duration": "preview-duration",
	"action":           "action",
	"order":            "order",
	"move_up":          "move-up",
	"move_down":        "move-down",
	"select":           "select",
	"output":           "output",
	"json":             "json",
}

func registerFlags(fs *pflag.FlagSet) {
	d := Defaults()

	fs.String("config", d.Config, "Config file location")
	fs.String("log-level", d.LogLevel, "Log level (trace, debug, info, warn, error)")
	fs.Bool("noheader", false, "Disable the startup header")
	fs.Bool("nologs", false, "Discard all log output")
	fs.String("dir", "", "Folder of png/jpg images to animate")
	fs.Bool("include-jpg", d.IncludeJPG, "Include .jpg files next to .png files")
	fs.String("output-dir", d.OutputDir, "Folder exports are written to")
	fs.String("working-dir", d.WorkingDir, "Folder the preview file is written to")
	fs.String("fps", d.FrameRate, "Frames per second of the video export")
	fs.String("duration", d.Duration, "Seconds each frame is shown in the gif export")
	fs.Int("loop-count", d.LoopCount, "Number of times the gif animation repeats")
	fs.Int("jpeg-quality", d.JpegQuality, "JPEG quality of video frames")
	fs.Int("preview-width", 0, "Preview width in pixels, 0 for half the source")
	fs.Int("preview-height", 0, "Preview height in pixels, 0 for half the source")
	fs.String("preview-duration", d.PreviewDuration, "Seconds each preview frame is shown")
	fs.String("action", string(d.Action), "One of list, show, gif, video, preview, help, hints")
	fs.StringSlice("order", nil, "Explicit frame order as a comma separated list of file names")
	fs.StringSlice("move-up", nil, "Rows to move up one position")
	fs.StringSlice("move-down", nil, "Rows to move down one position")
	fs.Int("select", d.Select, "Row to show with the show action")
	fs.String("output", "", "Output file, defaults to a timestamped name in output-dir")
	fs.Bool("json", false, "Print the result as json")
}

func desktop() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}

func (c *Config) Validate() error {
	if c.LoopCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLoopCount, c.LoopCount)
	}
	if c.JpegQuality < 1 || c.JpegQuality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidJpegQuality, c.JpegQuality)
	}
	if c.PreviewWidth < 0 || c.PreviewHeight < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidPreviewSize, c.PreviewWidth, c.PreviewHeight)
	}

	switch c.Action {
	case ActionList, ActionShow, ActionGIF, ActionVideo, ActionPreview, ActionHelp, ActionHints:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, c.Action)
	}

	return nil
}

type Config struct {
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level,omitempty"`
	Config   string `json:"config,omitempty" mapstructure:"config,omitempty"`
	NoHeader bool   `json:"noheader,omitempty" mapstructure:"noheader,omitempty"`
	NoLogs   bool   `json:"nologs,omitempty" mapstructure:"nologs,omitempty"`

	Dir        string `json:"dir,omitempty" mapstructure:"dir,omitempty"`
	IncludeJPG bool   `json:"include_jpg,omitempty" mapstructure:"include_jpg,omitempty"`
	OutputDir  string `json:"output_dir,omitempty" mapstructure:"output_dir,omitempty"`
	WorkingDir string `json:"working_dir,omitempty" mapstructure:"working_dir,omitempty"`

	// kept as typed text, parsed and validated before every export
	FrameRate string `json:"fps,omitempty" mapstructure:"fps,omitempty"`
	Duration  string `json:"duration,omitempty" mapstructure:"duration,omitempty"`

	LoopCount   int `json:"loop_count,omitempty" mapstructure:"loop_count,omitempty"`
	JpegQuality int `json:"jpeg_quality,omitempty" mapstructure:"jpeg_quality,omitempty"`

	PreviewWidth    int    `json:"preview_width,omitempty" mapstructure:"preview_width,omitempty"`
	PreviewHeight   int    `json:"preview_height,omitempty" mapstructure:"preview_height,omitempty"`
	PreviewDuration string `json:"preview_duration,omitempty" mapstructure:"preview_duration,omitempty"`

	Action   Action   `json:"action,omitempty" mapstructure:"action,omitempty"`
	Order    []string `json:"order,omitempty" mapstructure:"order,omitempty"`
	MoveUp   []int    `json:"move_up,omitempty" mapstructure:"move_up,omitempty"`
	MoveDown []int    `json:"move_down,omitempty" mapstructure:"move_down,omitempty"`
	Select   int      `json:"select,omitempty" mapstructure:"select,omitempty"`
	Output   string   `json:"output,omitempty" mapstructure:"output,omitempty"`
	JSON     bool     `json:"json,omitempty" mapstructure:"json,omitempty"`
}
