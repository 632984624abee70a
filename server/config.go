package server

import "github.com/caarlos0/env/v11"

// Config 进程级配置，从环境变量读取；监听地址可被命令行参数覆盖
type Config struct {
	Addr     string `env:"ARENA_ADDR" envDefault:":8080"`
	LogFile  string `env:"ARENA_LOG_FILE" envDefault:"app.log"`
	LogLevel string `env:"ARENA_LOG_LEVEL" envDefault:"debug"`
	WebDir   string `env:"ARENA_WEB_DIR" envDefault:"web"`
}

// LoadConfig 解析环境变量
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
