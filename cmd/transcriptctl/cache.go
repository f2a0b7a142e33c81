package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/kvstore"
	"github.com/designemotion/transcript/internal/transcript"
)

type kvAction func(ctx context.Context, w io.Writer, cfg *config.Config, store *kvstore.RedisStore) error

func withKVStore(action kvAction) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, store, closeStore, err := openKVStore()
		if err != nil {
			return err
		}
		return errors.Join(action(cmd.Context(), cmd.OutOrStdout(), cfg, store), closeStore())
	}
}

func newCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear cached transcripts",
	}

	var url string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove one cached page, or every cached page",
		RunE: withKVStore(func(ctx context.Context, w io.Writer, cfg *config.Config, store *kvstore.RedisStore) error {
			return clearCache(ctx, w, transcript.NewCache(store, cfg.Cache.TranscriptTTL), url)
		}),
	}
	clearCmd.Flags().StringVar(&url, "url", "", "page url to remove")

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cached pages and their languages",
			RunE: withKVStore(func(ctx context.Context, w io.Writer, cfg *config.Config, store *kvstore.RedisStore) error {
				return listCache(ctx, w, transcript.NewCache(store, cfg.Cache.TranscriptTTL))
			}),
		},
		clearCmd,
	)
	return cacheCmd
}

func newKVCommand() *cobra.Command {
	kvCmd := &cobra.Command{
		Use:   "kv",
		Short: "Key-value store maintenance",
	}

	var yes bool
	flushCmd := &cobra.Command{
		Use:   "flush",
		Short: "Remove every key of the selected Redis database, including tickets and rate limits",
		RunE: withKVStore(func(ctx context.Context, w io.Writer, cfg *config.Config, store *kvstore.RedisStore) error {
			return flushKV(ctx, w, store, yes)
		}),
	}
	flushCmd.Flags().BoolVar(&yes, "yes", false, "confirm the flush")

	kvCmd.AddCommand(flushCmd)
	return kvCmd
}

func listCache(ctx context.Context, w io.Writer, cache *transcript.Cache) error {
	urls, err := cache.URLs(ctx)
	if err != nil {
		return err
	}
	sort.Strings(urls)

	bold := color.New(color.Bold)
	count := 0
	for _, url := range urls {
		entry, err := cache.Entry(ctx, url)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		count++
		etag := entry.ETagValue()
		if etag == "" {
			etag = "-"
		}
		_, _ = bold.Fprintln(w, url)
		_, _ = fmt.Fprintf(w, "  etag: %s  languages: %s\n", etag, strings.Join(entry.Transcripts.Languages(), ", "))
	}
	_, _ = fmt.Fprintf(w, "%d cached page(s)\n", count)
	return nil
}

func clearCache(ctx context.Context, w io.Writer, cache *transcript.Cache, url string) error {
	if url != "" {
		entry, err := cache.Entry(ctx, url)
		if err != nil {
			return err
		}
		if entry == nil {
			_, _ = color.New(color.FgYellow).Fprintf(w, "%s is not cached\n", url)
			return nil
		}
		if err := cache.Remove(ctx, url); err != nil {
			return err
		}
		_, _ = color.New(color.FgGreen).Fprintf(w, "removed %s\n", url)
		return nil
	}

	removed, err := cache.Clear(ctx)
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, "removed %d cached page(s)\n", removed)
	return nil
}

func flushKV(ctx context.Context, w io.Writer, store kvstore.Store, confirmed bool) error {
	if !confirmed {
		return errors.New("kv flush removes every key; pass --yes to confirm")
	}
	if err := store.Flush(ctx); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintln(w, "flushed")
	return nil
}
