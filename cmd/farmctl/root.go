package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/config"

	"github.com/spf13/cobra"
)

const dateLayout = time.DateOnly

// rootFlags son los flags compartidos por todos los subcomandos.
type rootFlags struct {
	configPath string
	policyPath string
	today      string
}

func getRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "farmctl",
		Short: "Consultas offline al motor de ciclo de vida del rodeo",
		Long: `farmctl calcula categorías, ventanas de retiro y tactos con la misma
política que usa el servicio, sin tocar la base de datos.

Las fechas van en formato YYYY-MM-DD y la salida es JSON.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "archivo de configuración YAML (por defecto FARM_CONFIG)")
	pf.StringVarP(&flags.policyPath, "policy", "p", "", "archivo de política YAML (pisa policy_file de la configuración)")
	pf.StringVar(&flags.today, "today", "", "fecha de referencia YYYY-MM-DD (por defecto hoy)")

	root.AddCommand(
		classifyCmd(flags),
		ageCmd(flags),
		withdrawalCmd(flags),
		pregnancyCheckCmd(flags),
		statusCmd(flags),
		policyCmd(flags),
	)
	return root
}

// engine arma el motor con la política elegida y el reloj fijado por --today.
func (f *rootFlags) engine() (*lifecycle.Engine, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.policyPath != "" {
		cfg.PolicyFile = f.policyPath
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	clock := time.Now
	if f.today != "" {
		today, err := parseDate("today", f.today)
		if err != nil {
			return nil, err
		}
		clock = func() time.Time { return today }
	}
	return lifecycle.NewEngine(policy, clock)
}

func parseDate(name, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD", name)
	}
	return t, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
