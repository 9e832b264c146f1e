package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/davecgh/go-spew/spew"
	jsoniter "github.com/json-iterator/go"

	"github.com/pinanimate/PinAnimate/src/configure"
	"github.com/pinanimate/PinAnimate/src/global"
	"github.com/pinanimate/PinAnimate/src/job"
	"github.com/pinanimate/PinAnimate/src/shell"
	"github.com/sirupsen/logrus"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		logrus.Error(s)
	})
	if err != nil {
		logrus.Error("failed to setup panic handler: ", err)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		logrus.Info("PinAnimate")
		logrus.Infof("Version: %s", Version)
		logrus.Infof("build.Time: %s", Time)
		logrus.Infof("build.User: %s", User)
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debug(spew.Sdump(config))
	}

	c, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx := global.New(c, config)
	sh := shell.New(ctx)

	os.Exit(run(ctx, sh))
}

func run(ctx global.Context, sh *shell.Shell) int {
	config := ctx.Config()

	switch config.Action {
	case configure.ActionHelp:
		fmt.Println(sh.Help())
		return 0
	case configure.ActionHints:
		fmt.Println(sh.Hints())
		return 0
	}

	if config.Dir == "" {
		logrus.Error("no folder given, use --dir")
		return 1
	}

	if err := sh.OpenFolder(config.Dir); err != nil {
		logrus.WithError(err).Error("failed to open folder")
		return 1
	}

	if len(config.Order) != 0 {
		if err := sh.Reorder(config.Order); err != nil {
			logrus.WithError(err).Error("failed to reorder")
			return 1
		}
	}
	if len(config.MoveUp) != 0 {
		sh.MoveUp(config.MoveUp...)
	}
	if len(config.MoveDown) != 0 {
		sh.MoveDown(config.MoveDown...)
	}

	var res job.Result
	switch config.Action {
	case configure.ActionList:
		return list(sh, config.JSON)
	case configure.ActionShow:
		if err := sh.Select(config.Select); err != nil {
			logrus.WithError(err).Error("failed to show image")
			return 1
		}
		return 0
	case configure.ActionGIF:
		res = sh.ExportGIF()
	case configure.ActionVideo:
		res = sh.ExportVideo()
	case configure.ActionPreview:
		res = sh.Preview()
	}

	if config.JSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			logrus.WithError(err).Error("failed to marshal result")
			return 1
		}
		fmt.Println(string(data))
	} else if res.Success {
		fmt.Println(res.Output)
	}

	if !res.Success {
		return 1
	}
	return 0
}

func list(sh *shell.Shell, asJSON bool) int {
	refs := sh.Sequence().References()

	if asJSON {
		data, err := json.MarshalIndent(refs, "", "  ")
		if err != nil {
			logrus.WithError(err).Error("failed to marshal images")
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	for i, ref := range refs {
		fmt.Printf("%d\t%s\t%s\n", i, ref.Name(), ref.SizeLabel())
	}
	return 0
}
