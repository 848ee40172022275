package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

var ErrInvalidTurnBudget = errors.New("autoplay max-turns must be positive")

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis    `yaml:"redis"`
	Game     Game     `yaml:"game"`
	Autoplay Autoplay `yaml:"autoplay"`
	Computer Computer `yaml:"computer"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	P1Mark  string `yaml:"p1-mark" env:"GAME_P1_MARK" env-default:"X"`
	P2Mark  string `yaml:"p2-mark" env:"GAME_P2_MARK" env-default:"O"`
	Player1 string `yaml:"player1" env:"GAME_PLAYER1" env-default:"Player 1"`
	Player2 string `yaml:"player2" env:"GAME_PLAYER2" env-default:"Player 2"`
	Starter string `yaml:"starter" env:"GAME_STARTER" env-default:"fixed"`
}

type Autoplay struct {
	MaxTurns  int           `yaml:"max-turns" env:"AUTOPLAY_MAX_TURNS" env-default:"1000"`
	StrategyA string        `yaml:"strategy-a" env:"AUTOPLAY_STRATEGY_A" env-default:"random"`
	StrategyB string        `yaml:"strategy-b" env:"AUTOPLAY_STRATEGY_B" env-default:"tactics"`
	Delay     time.Duration `yaml:"delay" env:"AUTOPLAY_DELAY" env-default:"0s"`
}

type Computer struct {
	Strategy string        `yaml:"strategy" env:"COMPUTER_STRATEGY" env-default:"tactics"`
	Delay    time.Duration `yaml:"delay" env:"COMPUTER_DELAY" env-default:"600ms"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path, or only the environment when path does not exist, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Game.P1Mark == "" || that.Game.P2Mark == "" || that.Game.P1Mark == that.Game.P2Mark {
		return fmt.Errorf("invalid game config: %w", apperror.ErrInvalidMarks)
	}

	if _, err := that.Game.StarterPolicy(); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	if that.Autoplay.MaxTurns <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTurnBudget, that.Autoplay.MaxTurns)
	}

	for _, name := range []string{that.Autoplay.StrategyA, that.Autoplay.StrategyB, that.Computer.Strategy} {
		if _, err := bot.New(name, bot.NewRand(0)); err != nil {
			return fmt.Errorf("invalid strategy config: %w", err)
		}
	}

	return nil
}

func (that *Game) StarterPolicy() (entity.StarterPolicy, error) {
	return entity.ParseStarterPolicy(that.Starter)
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
