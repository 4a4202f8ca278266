package logger

// LogConf 日志配置
// Mode: console (开发) 或 file (生产, 走 lumberjack 切割)
type LogConf struct {
	ServiceName string `toml:"service_name" mapstructure:"service_name" json:"service_name"` // 服务名称, 追加到每条日志
	Mode        string `toml:"mode" mapstructure:"mode" json:"mode"`                         // 输出模式: console / file
	Path        string `toml:"path" mapstructure:"path" json:"path"`                         // 日志文件目录 (file 模式)
	Level       string `toml:"level" mapstructure:"level" json:"level"`                      // 日志级别: debug / info / warn / error
	KeepDays    int    `toml:"keep_days" mapstructure:"keep_days" json:"keep_days"`          // 日志保留天数
	Compress    bool   `toml:"compress" mapstructure:"compress" json:"compress"`             // 是否压缩历史日志
}
