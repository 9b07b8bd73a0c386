package main

import (
	"errors"

	"farm-livestock-records/internal/domain/lifecycle"

	"github.com/spf13/cobra"
)

func classifyCmd(rf *rootFlags) *cobra.Command {
	var (
		species, sex, dob           string
		ageMonths                   int
		hasBred, newborn, castrated bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Categoría productiva de un animal",
		Example: `  farmctl classify --species cattle --sex female --age-months 30
  farmctl classify --species goat --sex male --dob 2024-02-10 --castrated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			sp, err := lifecycle.ParseSpecies(species)
			if err != nil {
				return errors.New("--species must be cattle, goat or sheep")
			}
			sx, err := lifecycle.ParseSex(sex)
			if err != nil {
				return errors.New("--sex must be male or female")
			}

			age := ageMonths
			if dob != "" {
				d, err := parseDate("dob", dob)
				if err != nil {
					return err
				}
				if age, err = lifecycle.AgeInMonths(d, e.Now()); err != nil {
					return err
				}
			} else if !cmd.Flags().Changed("age-months") {
				return errors.New("--age-months or --dob required")
			}

			cat, err := e.Classify(sp, sx, age, hasBred && sx == lifecycle.SexFemale, newborn)
			if err != nil {
				return err
			}
			if castrated {
				if cat, err = lifecycle.Castrate(cat); err != nil {
					return err
				}
			}
			return printJSON(cmd, map[string]any{
				"species":    sp,
				"sex":        sx,
				"age_months": age,
				"category":   cat.String(),
				"juvenile":   cat.IsJuvenile(),
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&species, "species", "", "cattle | goat | sheep")
	f.StringVar(&sex, "sex", "", "male | female")
	f.IntVar(&ageMonths, "age-months", 0, "edad en meses completos")
	f.StringVar(&dob, "dob", "", "fecha de nacimiento YYYY-MM-DD (en lugar de --age-months)")
	f.BoolVar(&hasBred, "has-bred", false, "la hembra ya fue servida")
	f.BoolVar(&newborn, "newborn", false, "marcado como recién nacido")
	f.BoolVar(&castrated, "castrated", false, "macho castrado")
	_ = cmd.MarkFlagRequired("species")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

func ageCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "age DATE_OF_BIRTH",
		Short: "Edad en meses completos a la fecha de referencia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			dob, err := parseDate("date_of_birth", args[0])
			if err != nil {
				return err
			}
			months, err := lifecycle.AgeInMonths(dob, e.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"date_of_birth": dob.Format(dateLayout),
				"as_of":         e.Now().Format(dateLayout),
				"age_months":    months,
			})
		},
	}
	return cmd
}

func withdrawalCmd(rf *rootFlags) *cobra.Command {
	var treatment, administered string

	cmd := &cobra.Command{
		Use:     "withdrawal",
		Short:   "Fin de retiro y próxima dosis de un tratamiento",
		Example: `  farmctl withdrawal --type antibiotics --administered 2025-06-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			t, err := lifecycle.ParseTreatmentType(treatment)
			if err != nil {
				return errors.New("--type must be one of VACCINE, VITAMINS, ANTIBIOTICS, ANTI_INFLAMMATORY, DEWORMER")
			}
			day, err := parseDate("administered", administered)
			if err != nil {
				return err
			}
			w, err := e.ComputeWithdrawal(t, day)
			if err != nil {
				return err
			}

			out := map[string]any{
				"type":                t,
				"administered_on":     w.AdministeredOn.Format(dateLayout),
				"withdrawal_end_date": w.EndDate.Format(dateLayout),
				"withdrawal_days":     w.Days,
				"in_withdrawal":       w.Active(e.Now()),
			}
			if w.AutoNextDue != nil {
				out["next_due_date"] = w.AutoNextDue.Format(dateLayout)
				if st, err := e.RoutineStatus(*w.AutoNextDue, e.Now()); err == nil {
					out["next_due_status"] = st
				}
			}
			if e.HasCheckups(t) {
				c, err := e.OpenCourse(t, day)
				if err != nil {
					return err
				}
				if next := e.NextCheckup(c); next != nil {
					out["next_checkup"] = next.Format(dateLayout)
				}
			}
			return printJSON(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&treatment, "type", "", "tipo de tratamiento")
	f.StringVar(&administered, "administered", "", "fecha de aplicación YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("administered")
	return cmd
}

func pregnancyCheckCmd(rf *rootFlags) *cobra.Command {
	var bredOn string

	cmd := &cobra.Command{
		Use:   "pregnancy-check",
		Short: "Fecha y estado del tacto a partir del servicio",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			day, err := parseDate("bred-on", bredOn)
			if err != nil {
				return err
			}
			pc, err := e.PregnancyCheckWindow(day)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"breeding_date":  pc.BreedingDate.Format(dateLayout),
				"check_due_date": pc.CheckDueDate.Format(dateLayout),
				"due_soon_from":  pc.DueSoonFrom.Format(dateLayout),
				"status":         e.PregnancyCheckStatus(pc, e.Now()),
			})
		},
	}

	cmd.Flags().StringVar(&bredOn, "bred-on", "", "fecha de servicio YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("bred-on")
	return cmd
}

func statusCmd(rf *rootFlags) *cobra.Command {
	var (
		due  string
		band int
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Estado de un vencimiento (completed, due_soon, overdue)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			d, err := parseDate("due", due)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("band") {
				band = e.Policy().RoutineDueSoonDays
			}
			st, err := lifecycle.StatusFor(d, e.Now(), band)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"due_date":       d.Format(dateLayout),
				"as_of":          e.Now().Format(dateLayout),
				"due_soon_days":  band,
				"status":         st,
				"days_remaining": lifecycle.DaysBetween(e.Now(), d),
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&due, "due", "", "fecha de vencimiento YYYY-MM-DD")
	f.IntVar(&band, "band", 0, "días de aviso previo (por defecto la banda de rutina de la política)")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func policyCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Muestra la política vigente (valida el archivo si se pasó --policy)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rf.engine()
			if err != nil {
				return err
			}
			return printJSON(cmd, e.Policy())
		},
	}
}
