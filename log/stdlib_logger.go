// SPDX-License-Identifier: ice License 1.0
//go:build !zerolog

package log

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ice-blockchain/spdx/config"
)

const (
	debug = "debug"
	info  = "info"
	warn  = "warn"
)

// .
var (
	//nolint:gochecknoglobals // Immutable singleton.
	appCfg cfg
	//nolint:gochecknoglobals // Immutable singleton.
	levels = map[string]int{debug: 0, info: 1, warn: 2, "error": 3}
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix | log.LUTC | log.Llongfile | log.Lmicroseconds)
	config.MustLoadFromKeyWithDefaults(configKey, &appCfg, defaultCfg())
	appCfg.Level = strings.ToLower(appCfg.Level)
}

func enabled(level string) bool {
	current, found := levels[appCfg.Level]
	if !found {
		current = levels[info]
	}

	return levels[level] >= current
}

func printf(level string, msg any, fields ...any) {
	vars := make([]string, 0, len(fields)+1)
	for i := 0; i <= len(fields); i++ {
		vars = append(vars, "%v")
	}
	vals := make([]any, 0, len(fields)+1)
	vals = append(vals, msg)
	vals = append(vals, fields...)

	//nolint:govet // The format is built above.
	log.Printf(fmt.Sprintf("%v:%v", strings.ToUpper(level), strings.Join(vars, " ")), vals...)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	printf("error", err.Error(), fields...)
}

func Debug(msg string, fields ...any) {
	if !enabled(debug) {
		return
	}
	printf(debug, msg, fields...)
}

func Info(msg string, fields ...any) {
	if !enabled(info) {
		return
	}
	printf(info, msg, fields...)
}

func Warn(msg string, fields ...any) {
	if !enabled(warn) {
		return
	}
	printf(warn, msg, fields...)
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	defer os.Exit(1)
	Error(asError(anything), fields...)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	defer func() {
		panic(anything)
	}()
	Error(asError(anything), fields...)
}

func Level() string {
	return appCfg.Level
}
