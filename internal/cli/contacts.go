package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trustguard/internal/infrastructure/storage"
)

var (
	contactRelation string
	contactPhone    string
	contactSafeWord string
)

var contactsCmd = &cobra.Command{
	Use:          "contacts",
	SilenceUsage: true,
	Short:        "Manage trusted contacts and safe words",
	Long: `Contacts keeps a small list of trusted people with a shared safe
word each. When a caller claims to be one of them, verify the phrase
before trusting the call. Only a hash of each safe word is stored.`,
}

var contactsAddCmd = &cobra.Command{
	Use:          "add [name]",
	SilenceUsage: true,
	Short:        "Add a trusted contact with a safe word",
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		safeWord := contactSafeWord
		if safeWord == "" {
			fmt.Print("Safe word: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read safe word: %w", err)
			}
			safeWord = strings.TrimSpace(line)
		}
		if safeWord == "" {
			return fmt.Errorf("a safe word is required")
		}

		contact, err := newContactStore().Add(args[0], contactRelation, contactPhone, safeWord)
		if err != nil {
			return err
		}

		fmt.Printf("Added trusted contact %s\n", contact.Name)
		return nil
	},
}

var contactsListCmd = &cobra.Command{
	Use:          "list",
	SilenceUsage: true,
	Short:        "List trusted contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		contacts, err := newContactStore().List()
		if err != nil {
			return err
		}

		if jsonOutput {
			type contactOut struct {
				Name     string `json:"name"`
				Relation string `json:"relation,omitempty"`
				Phone    string `json:"phone,omitempty"`
			}
			out := make([]contactOut, 0, len(contacts))
			for _, c := range contacts {
				out = append(out, contactOut{Name: c.Name, Relation: c.Relation, Phone: c.Phone})
			}
			return printJSON(out)
		}

		if len(contacts) == 0 {
			fmt.Println("No trusted contacts saved.")
			return nil
		}
		for _, c := range contacts {
			line := c.Name
			if c.Relation != "" {
				line += " (" + c.Relation + ")"
			}
			if c.Phone != "" {
				line += " " + c.Phone
			}
			fmt.Println(line)
		}
		return nil
	},
}

var contactsRemoveCmd = &cobra.Command{
	Use:          "remove [name]",
	SilenceUsage: true,
	Short:        "Remove a trusted contact",
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newContactStore().Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var contactsVerifyCmd = &cobra.Command{
	Use:          "verify [name] [phrase]",
	SilenceUsage: true,
	Short:        "Check a safe word phrase against a contact",
	Args:         cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := newContactStore().VerifySafeWord(args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("safe word does not match for %s", args[0])
		}
		fmt.Printf("Safe word matches for %s\n", args[0])
		return nil
	},
}

func init() {
	contactsAddCmd.Flags().StringVar(&contactRelation, "relation", "", "relationship, e.g. daughter")
	contactsAddCmd.Flags().StringVar(&contactPhone, "phone", "", "phone number")
	contactsAddCmd.Flags().StringVar(&contactSafeWord, "safe-word", "", "safe word (prompted for when omitted)")

	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsRemoveCmd)
	contactsCmd.AddCommand(contactsVerifyCmd)
	rootCmd.AddCommand(contactsCmd)
}

func newContactStore() *storage.ContactStore {
	return storage.NewContactStore(appConfig.Contacts.Path, log)
}
