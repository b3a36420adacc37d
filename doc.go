// Package inaturalist provides a Go client for the iNaturalist REST API.
//
// Reads go to the API host (https://api.inaturalist.org/v1 by default) and
// writes to the web host (https://www.inaturalist.org by default). Hosts
// can be set with options, through "config:inaturalist_*" keys of the
// embedding [Environment], or with the API_URL and WRITE_API_URL
// environment variables.
//
// Basic usage:
//
//	client, err := inaturalist.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Search taxa
//	result, err := client.Taxa.Autocomplete(ctx, inaturalist.Params{"q": "oak"}, inaturalist.RequestOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp := result.(*inaturalist.Response)
//	fmt.Println("First match:", resp.Get("results.0.name").String())
//
// Write calls need an API token:
//
//	_, err = client.Observations.Fave(ctx, inaturalist.Params{"id": 123},
//	    inaturalist.RequestOptions{APIToken: token})
//
// Every call sends exactly one request. Failures are returned as
// [*HTTPError], [*MalformedResponseBodyError], [*NetworkError] or
// [*MissingRouteParameterError]; match them with errors.Is against the
// sentinel errors such as [ErrNotFound].
package inaturalist
