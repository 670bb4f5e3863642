package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

var (
	seedOrgName   string
	seedUserID    string
	seedUserEmail string
	seedUserName  string
)

// seedCmd bootstraps a fresh installation: one organization plus the super
// administrator profile. The account itself must already exist in the
// identity backend; the id given here is the one it assigned.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the first organization and super administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(seedUserID)
		if err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}

		log := cliLogger()
		db, err := openDatabase(cmd.Context(), log)
		if err != nil {
			return err
		}

		org := models.NewOrganization(seedOrgName)
		org.LicenseType = constants.LicensePro
		if err := db.WithContext(cmd.Context()).Create(org).Error; err != nil {
			return fmt.Errorf("create organization: %w", err)
		}

		admin := &models.User{
			ID:             userID,
			Email:          seedUserEmail,
			FullName:       seedUserName,
			Role:           constants.RoleSuperAdmin,
			OrganizationID: &org.ID,
			LicenseType:    constants.LicensePro,
			CreatedAt:      org.CreatedAt,
			UpdatedAt:      org.UpdatedAt,
		}
		if err := db.WithContext(cmd.Context()).Create(admin).Error; err != nil {
			return fmt.Errorf("create super administrator: %w", err)
		}

		fmt.Printf("organization %s created with super administrator %s\n", org.ID, admin.Email)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOrgName, "org-name", "", "name of the first organization")
	seedCmd.Flags().StringVar(&seedUserID, "user-id", "", "provider-assigned id of the super administrator")
	seedCmd.Flags().StringVar(&seedUserEmail, "email", "", "email of the super administrator")
	seedCmd.Flags().StringVar(&seedUserName, "name", "", "full name of the super administrator")
	_ = seedCmd.MarkFlagRequired("org-name")
	_ = seedCmd.MarkFlagRequired("user-id")
	_ = seedCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(seedCmd)
}
