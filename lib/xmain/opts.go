package xmain

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

// Opts registers flags whose defaults can be overridden by environment
// variables. Flags take precedence over the environment.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env
	log   *cmdlog.Logger

	envs []string
}

func NewOpts(env *xos.Env, log *cmdlog.Logger, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:  args,
		Flags: flags,
		env:   env,
		log:   log,
	}
}

// Parse parses Args. Parse errors are usage errors.
func (o *Opts) Parse() error {
	if err := o.Flags.Parse(o.Args); err != nil {
		return UsageErrorf("%v", err)
	}
	return nil
}

func (o *Opts) Help() string {
	var b strings.Builder
	o.Flags.SetOutput(&b)
	o.Flags.PrintDefaults()
	o.Flags.SetOutput(io.Discard)

	if len(o.envs) > 0 {
		b.WriteString("\nEnvironment variables (flags take precedence):\n")
		b.WriteString("- $" + strings.Join(o.envs, "\n- $"))
	}
	return b.String()
}

// lookupEnv registers k for Help and returns its value.
func (o *Opts) lookupEnv(k string) string {
	if k == "" {
		return ""
	}
	o.envs = append(o.envs, k)
	return o.env.Getenv(k)
}

func envError(k, kind, v string) error {
	return fmt.Errorf("invalid environment variable %s: expected %s, found %q", k, kind, v)
}

func (o *Opts) Float64(envKey, flag, shortFlag string, defaultVal float64, usage string) (*float64, error) {
	if v := o.lookupEnv(envKey); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, envError(envKey, "number", v)
		}
		defaultVal = f
	}
	return o.Flags.Float64P(flag, shortFlag, defaultVal, usage), nil
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if v := o.lookupEnv(envKey); v != "" {
		defaultVal = v
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	if v := o.lookupEnv(envKey); v != "" {
		switch v {
		case "1", "true":
			defaultVal = true
		case "0", "false":
			defaultVal = false
		default:
			return nil, envError(envKey, "bool", v)
		}
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}
