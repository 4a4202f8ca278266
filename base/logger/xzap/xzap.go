package xzap

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ProjectsTask/EasySwapMarket/base/logger"
)

// Xzap 对 zap.Logger 的薄封装
// 通过 SetUp 初始化全局实例, 业务侧统一用 WithContext(ctx) 获取
type Xzap struct {
	logger *zap.Logger
}

var (
	mu            sync.RWMutex
	defaultLogger = &Xzap{logger: zap.NewNop()}
)

// SetUp 初始化全局日志实例
// file 模式下使用 lumberjack 做日志切割, console 模式直接输出到标准输出
func SetUp(c logger.LogConf) (*Xzap, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(c.Level)); err != nil && c.Level != "" {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	var encoder zapcore.Encoder
	if c.Mode == "file" {
		// 生产模式: JSON 格式写文件, 按大小/天数切割
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(c.Path, c.ServiceName+".log"),
			MaxSize:  128, // MB
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		// 开发模式: 控制台可读格式
		ws = zapcore.Lock(os.Stdout)
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, ws, level)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if c.ServiceName != "" {
		l = l.With(zap.String("service", c.ServiceName))
	}

	mu.Lock()
	defaultLogger = &Xzap{logger: l}
	mu.Unlock()

	return defaultLogger, nil
}

// WithContext 获取带上下文的日志实例
// 预留 ctx 入参以便后续接入 trace id 透传
func WithContext(_ context.Context) *Xzap {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func (x *Xzap) Debug(msg string, fields ...zap.Field) {
	x.logger.Debug(msg, fields...)
}

func (x *Xzap) Info(msg string, fields ...zap.Field) {
	x.logger.Info(msg, fields...)
}

func (x *Xzap) Warn(msg string, fields ...zap.Field) {
	x.logger.Warn(msg, fields...)
}

func (x *Xzap) Error(msg string, fields ...zap.Field) {
	x.logger.Error(msg, fields...)
}
