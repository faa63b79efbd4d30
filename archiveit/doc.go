// Package archiveit reads crawl activity from Archive-It and the public Wayback Machine.
//
// It covers three jobs:
//
//   - List the account's seeds through the partner API (Client.ListSeeds)
//   - Tie a URL to a collection, by exact seed match or by sibling seeds on the
//     same registrable domain (Resolve)
//   - Read capture timestamps from a CDX index and condense them (FetchCaptures, Summarize)
//
// Usage:
//
//	client := archiveit.NewClient(archiveit.Config{
//		PartnerAPIURL: "https://partner.archive-it.org/api",
//		WaybackURL:    "https://wayback.archive-it.org",
//		Username:      user,
//		Password:      pass,
//	})
//	seeds, err := client.ListSeeds(ctx, account)
//	res, err := archiveit.Resolve(seeds, "https://library.gwu.edu/")
//	captures, err := client.FetchCaptures(ctx, res.Collection, "https://library.gwu.edu/")
//	summary, err := archiveit.Summarize(captures)
//
// Records captured by the Internet Archive itself are read with PublicIndex,
// which shares the CDX parsing but has no seeds or collections.
package archiveit
