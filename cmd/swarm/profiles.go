package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/swarm/internal/config"
	"github.com/jeanpaul/swarm/internal/subagent"
	"github.com/jeanpaul/swarm/internal/tui"
)

var (
	profileDescription string
	profilePrompt      string
	profileModel       string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List agent profiles",
	Long: `Profiles customise sub-agents. A spec with agent_cli_name set runs with
that profile's system prompt and model. Profiles live in
~/.config/swarm/agents/<name>.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultProfileStore()
		names, err := store.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintf(out, "No profiles in %s; agents run as %q.\n", store.Dir, subagent.DefaultProfile)
			return nil
		}
		for _, name := range names {
			p, err := store.Load(name)
			if err != nil {
				fmt.Fprintf(out, "%s %s %s\n", tui.BulletStyle.Render("●"), name, tui.ErrorStyle.Render(err.Error()))
				continue
			}
			fmt.Fprintf(out, "%s %s %s\n", tui.BulletStyle.Render("●"), tui.AgentNameStyle.Render(p.Name), tui.ProfileStyle.Render(p.Description))
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.DefaultProfileStore().Load(args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create or replace a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if profilePrompt == "" {
			return fmt.Errorf("--system-prompt is required")
		}
		store := config.DefaultProfileStore()
		err := store.Save(config.AgentProfile{
			Name:         args[0],
			Description:  profileDescription,
			SystemPrompt: profilePrompt,
			Model:        profileModel,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q in %s\n", args[0], store.Dir)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.DefaultProfileStore().Delete(args[0])
	},
}

func init() {
	profileCreateCmd.Flags().StringVar(&profileDescription, "description", "", "one line description")
	profileCreateCmd.Flags().StringVar(&profilePrompt, "system-prompt", "", "system prompt of agents using the profile")
	profileCreateCmd.Flags().StringVar(&profileModel, "profile-model", "", "model override for agents using the profile")

	profilesCmd.AddCommand(profileShowCmd, profileCreateCmd, profileDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}
