package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// profileFlags holds the body measurement flags shared by calories and tips.
type profileFlags struct {
	height   float64
	weight   float64
	sex      string
	activity string
	age      int
	location string
}

func (f *profileFlags) register(fs *pflag.FlagSet, withLocation bool) {
	fs.Float64Var(&f.height, "height", 0, "height in inches")
	fs.Float64Var(&f.weight, "weight", 0, "weight in pounds")
	fs.StringVar(&f.sex, "sex", "", "male or female")
	fs.StringVar(&f.activity, "activity", string(domain.ActivitySedentary), "sedentary or very_active")
	fs.IntVar(&f.age, "age", 0, "age in years")
	if withLocation {
		fs.StringVar(&f.location, "location", "", "city or region for foraging suggestions")
	}
}

func (f *profileFlags) profile() domain.Profile {
	return domain.Profile{
		HeightInches:  f.height,
		WeightLbs:     f.weight,
		Sex:           domain.Sex(f.sex),
		ActivityLevel: domain.ActivityLevel(f.activity),
		Age:           f.age,
		Location:      f.location,
	}
}

var (
	caloriesFlags profileFlags
	tipsFlags     profileFlags
)

var caloriesCmd = &cobra.Command{
	Use:   "calories",
	Short: "Estimate daily caloric needs",
	Long: `Estimates daily caloric needs with the Mifflin-St Jeor equation and an
activity multiplier (1.2 sedentary, 1.55 very active).`,
	Example: `  ration calories --height 70 --weight 180 --sex male --activity very_active --age 30`,
	Args:    cobra.NoArgs,
	RunE:    runCalories,
}

var tipsCmd = &cobra.Command{
	Use:     "tips",
	Short:   "Generate foraging recommendations",
	Example: `  ration tips --height 64 --weight 130 --sex female --age 41 --location "Asheville, NC"`,
	Args:    cobra.NoArgs,
	RunE:    runTips,
}

func init() {
	caloriesFlags.register(caloriesCmd.Flags(), false)
	tipsFlags.register(tipsCmd.Flags(), true)
	rootCmd.AddCommand(caloriesCmd)
	rootCmd.AddCommand(tipsCmd)
}

func runCalories(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Calories == nil {
		return errors.New("calorie service not configured")
	}

	result, err := app.Calories.DailyCalories(cmd.Context(), caloriesFlags.profile())
	if err != nil {
		return err
	}

	cmd.Printf("%s %s\n", headingStyle.Render("Daily caloric intake:"),
		valueStyle.Render(fmt.Sprintf("%d kcal", result.Rounded())))
	return nil
}

func runTips(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Calories == nil || app.Foraging == nil {
		return errors.New("foraging service not configured")
	}

	profile := tipsFlags.profile()
	result, err := app.Calories.DailyCalories(cmd.Context(), profile)
	if err != nil {
		return err
	}
	cmd.Printf("%s %s\n\n", headingStyle.Render("Daily caloric intake:"),
		valueStyle.Render(fmt.Sprintf("%d kcal", result.Rounded())))

	tips, err := app.Foraging.GenerateTips(cmd.Context(), profile)
	if err != nil {
		return fmt.Errorf("generating recommendations: %w", err)
	}
	cmd.Println(tips)
	return nil
}
