// Package discovery embeds the digital-object discovery layer in a Go program.
//
// A Client resolves records by PID, walks their collection ancestry, lists
// collection members with facets, assembles viewer manifests and opens
// datastream bytes. It talks to the search index directly over Redis and to
// the repository over HTTP; no discovery server is required.
//
//	client, _ := discovery.New(ctx,
//	    discovery.WithRedis("localhost:6379", ""),
//	    discovery.WithStandalone(),
//	    discovery.WithRepository("http://fedora:8080/fedora"),
//	    discovery.WithRootURL("https://digital.example.edu"),
//	)
//	defer client.Close()
//
//	obj, _ := client.Object(ctx, "codu:123")
//	trail, _ := client.Ancestry(ctx, obj.PID)
//	page, _ := client.Children(ctx, "codu:10", discovery.ListOptions{
//	    Page:    2,
//	    Filters: []discovery.Filter{{Facet: "Type", Value: "Still Image"}},
//	})
//
// Unpublished records are reachable through Private():
//
//	obj, err := client.Private().Object(ctx, "codu:456")
package discovery
