package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapMarket/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapMarket/src/api/router"
	"github.com/ProjectsTask/EasySwapMarket/src/app"
	"github.com/ProjectsTask/EasySwapMarket/src/config"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// ApiCmd 定义了 "api" 子命令, 启动市场 HTTP 服务
var ApiCmd = &cobra.Command{
	Use:   "api",
	Short: "serve nft marketplace api.",
	Long:  "serve nft marketplace api.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		onExit := make(chan error, 1)

		threading.GoSafe(func() {
			// 1. 读取和解析配置文件
			c, err := config.UnmarshalConfig(cfgFile)
			if err != nil {
				onExit <- err
				return
			}

			// 2. 初始化服务上下文 (日志、Redis、数据库、链网关、市场配置)
			serverCtx, err := svc.NewServiceContext(c)
			if err != nil {
				onExit <- err
				return
			}

			xzap.WithContext(ctx).Info("market api start", zap.String("port", c.Api.Port))

			// 3. pprof 监控
			if c.Monitor.PprofEnable {
				threading.GoSafe(func() {
					_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", c.Monitor.PprofPort), nil)
				})
			}

			// 4. 路由与服务启动 (阻塞)
			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(c, r, serverCtx)
			if err != nil {
				onExit <- err
				return
			}
			platform.Start()
		})

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			cancel()
			xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
		case err := <-onExit:
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(ApiCmd)
}
