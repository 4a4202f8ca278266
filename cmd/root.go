package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "easyswap-market",
	Short: "nft marketplace engine.",
	Long:  "nft marketplace engine: listings, fixed price sales, auctions with refundable bids.",
}

// Execute 解析命令行参数并执行相应的命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "conf", "./config/config.toml", "conf file path")
}
