package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tagfiler/tagfiler/internal/cli/output"
	"github.com/tagfiler/tagfiler/pkg/config"
	"github.com/tagfiler/tagfiler/pkg/metastore/models"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
)

var (
	tagListLimit int
	tagListOrder string
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `Create, list and search tags in the metadata store.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE:  runTagList,
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagCreate,
}

var tagSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search tags by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagSearch,
}

func init() {
	tagListCmd.Flags().IntVar(&tagListLimit, "limit", models.DefaultTagLimit, "maximum number of tags to return")
	tagListCmd.Flags().StringVar(&tagListOrder, "order", string(models.OrderMostUsed), "ordering: most_used or recently_used")

	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagSearchCmd)
}

func openTagStore() (*store.Store, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}
	if err := InitLogger(cfg); err != nil {
		return nil, err
	}
	st, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	return st, nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	st, err := openTagStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	order := models.TagOrder(tagListOrder)
	if !order.IsValid() {
		return fmt.Errorf("invalid order %q: must be most_used or recently_used", tagListOrder)
	}

	tags, err := st.ListTags(context.Background(), tagListLimit, order)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	return printTagTable(tags)
}

func runTagCreate(cmd *cobra.Command, args []string) error {
	st, err := openTagStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	tag, err := st.CreateTag(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	fmt.Printf("Tag created: %s (id: %d)\n", tag.Name, tag.ID)
	return nil
}

func runTagSearch(cmd *cobra.Command, args []string) error {
	st, err := openTagStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	tags, err := st.SearchTags(context.Background(), args[0], 0)
	if err != nil {
		return fmt.Errorf("failed to search tags: %w", err)
	}
	return printTagTable(tags)
}

func printTagTable(tags []models.Tag) error {
	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	data := output.NewTableData("ID", "NAME", "COLOR", "PARENT", "USAGE")
	for _, tag := range tags {
		color := "-"
		if tag.Color != nil {
			color = *tag.Color
		}
		parent := "-"
		if tag.ParentID != nil {
			parent = strconv.FormatUint(uint64(*tag.ParentID), 10)
		}
		data.AddRow(
			strconv.FormatUint(uint64(tag.ID), 10),
			tag.Name,
			color,
			parent,
			strconv.Itoa(tag.UsageCount),
		)
	}
	return output.PrintTable(os.Stdout, data)
}
