package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"RecoViewerBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Recommendation struct {
		Endpoint       string        `yaml:"endpoint" env-default:"https://www.uat3.potterybarn.com/svc/recommendation/v2/PB-USA/pages/"`
		PageID         string        `yaml:"page_id" env-default:"PIP"`
		UserAgent      string        `yaml:"user_agent" env-default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"`
		AcceptLanguage string        `yaml:"accept_language" env-default:"en-US,en;q=0.9"`
		Timeout        time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"recommendation"`
	OpenAI struct {
		ApiKey    string        `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		BaseURL   string        `yaml:"base_url" env-default:""`
		Model     string        `yaml:"model" env-default:"gpt-3.5-turbo-instruct"`
		MaxTokens int           `yaml:"max_tokens" env-default:"150"`
		Timeout   time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"openai"`
	Viewer struct {
		DefaultGroup   string `yaml:"default_group" env-default:"PB:cayman-wood-nightstand"`
		ImageBaseURL   string `yaml:"image_base_url" env-default:"https://qark-images.pbimgs.com/pbimgs/qark/images/dp/wcm/"`
		ProductBaseURL string `yaml:"product_base_url" env-default:"https://www.potterybarn.com/"`
	} `yaml:"viewer"`
	Session struct {
		CookieName string        `yaml:"cookie_name" env-default:"reco_session"`
		IdleTTL    time.Duration `yaml:"idle_ttl" env-default:"2h"`
	} `yaml:"session"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance, err = Load(path)
		if err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads the YAML file at path, applying env overrides and defaults.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("%s; %s", err, desc)
	}
	return conf, nil
}
