// Package ntlango assembles the social events API: a GraphQL server over
// MongoDB for users, events, event categories and their groups, event
// participants and follows.
//
// The command in cmd/ntlango is the usual way to run it, but an App can
// also be embedded:
//
//	cfg, err := config.Load(config.New())
//	...
//	app, err := ntlango.New(ctx, cfg, ntlango.Logger(log))
//	...
//	defer app.Close(context.Background())
//	err = app.Run(ctx)
//
// Clients POST queries to /graphql, for example:
//
//	{
//	  readEvents(options: {filters: [{field: "eventCategoryList.name", value: "Music"}]}) {
//	    title
//	    rsvpCount
//	    organizerList { username }
//	  }
//	}
//
// Mutations that change data need a token from createUser or loginUser in an
// "Authorization: Bearer <token>" header.
package ntlango
