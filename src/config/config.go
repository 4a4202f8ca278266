package config

import (
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	logging "github.com/ProjectsTask/EasySwapMarket/base/logger"
	"github.com/ProjectsTask/EasySwapMarket/base/stores/gdb"
)

// Config 应用全局配置
type Config struct {
	Api      Api              `toml:"api" mapstructure:"api" json:"api"`                   // HTTP 服务配置
	Monitor  Monitor          `toml:"monitor" mapstructure:"monitor" json:"monitor"`       // pprof 监控配置
	Log      *logging.LogConf `toml:"log" mapstructure:"log" json:"log"`                   // 日志配置
	Kv       *KvConf          `toml:"kv" mapstructure:"kv" json:"kv"`                      // Redis 配置
	DB       *gdb.Config      `toml:"db" mapstructure:"db" json:"db"`                      // 数据库配置
	ChainCfg ChainCfg         `toml:"chain_cfg" mapstructure:"chain_cfg" json:"chain_cfg"` // 链节点配置
	Market   MarketCfg        `toml:"market" mapstructure:"market" json:"market"`          // 市场初始配置 (首次启动落库)
}

// Api HTTP 服务配置
type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 形如 ":9000"
}

// Monitor pprof 监控配置
type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"`
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`
}

// ChainCfg 链接入配置
type ChainCfg struct {
	Name        string `toml:"name" mapstructure:"name" json:"name"`                            // 链名称 (eth, sepolia)
	ID          int64  `toml:"id" mapstructure:"id" json:"id"`                                  // Chain ID
	Endpoint    string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"`                // RPC 节点地址
	OperatorKey string `toml:"operator_key" mapstructure:"operator_key" json:"operator_key"`    // 运营账户私钥 (金库/授权主体)
}

// MarketCfg 市场引导配置
// 仅在市场配置单例不存在时用于初始化落库, 之后以库内数据为准
type MarketCfg struct {
	Owner        string `toml:"owner" mapstructure:"owner" json:"owner"`                            // 管理员地址
	Treasury     string `toml:"treasury" mapstructure:"treasury" json:"treasury"`                   // 手续费接收地址
	SellerFeeBps int64  `toml:"seller_fee_bps" mapstructure:"seller_fee_bps" json:"seller_fee_bps"` // 卖方费率 (bps)
	BuyerFeeBps  int64  `toml:"buyer_fee_bps" mapstructure:"buyer_fee_bps" json:"buyer_fee_bps"`    // 买方费率 (bps)
}

// KvConf Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

// Redis 连接配置
type Redis struct {
	Host string `toml:"host" mapstructure:"host" json:"host"`
	Type string `toml:"type" mapstructure:"type" json:"type"`
	Pass string `toml:"pass" mapstructure:"pass" json:"pass"`
}

// UnmarshalConfig 加载并解析指定路径的配置文件
// 支持 CNFT_ 前缀的环境变量覆盖 (key 中的 . 替换为 _)
func UnmarshalConfig(configFilePath string) (*Config, error) {
	path, err := homedir.Expand(configFilePath)
	if err != nil {
		return nil, err
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CNFT")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
