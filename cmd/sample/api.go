package main

import "github.com/bjaus/apiclient"

// The declarations below are what apigen emits for:
//
//	package: main
//	endpoints:
//	  /users:
//	    get:
//	      query:
//	        role?: string
//	        nameIncludes?: string
//	      response: "[]User"
//	    post: {body: userInput, response: User}
//	  /users/:id:
//	    name: user
//	    get: {response: User}
//	    put: {body: userInput, response: User}
//	    delete: {response: deleted}
//
// written by hand with unexported names.

type userParams struct {
	ID string `path:"id"`
}

type listQuery struct {
	Role         *string `query:"role,omitempty"`
	NameIncludes *string `query:"nameIncludes,omitempty"`
}

type usersAPI struct {
	listUsers  apiclient.Call[apiclient.Void, listQuery, []User]
	createUser apiclient.Call[apiclient.Void, userInput, User]
	getUser    apiclient.Call[userParams, apiclient.Void, User]
	updateUser apiclient.Call[userParams, userInput, User]
	deleteUser apiclient.Call[userParams, apiclient.Void, deleted]

	urls struct {
		users apiclient.URLFunc[apiclient.Void, listQuery]
		user  apiclient.URLFunc[userParams, apiclient.Void]
	}
}

func newUsersAPI(c *apiclient.Client) *usersAPI {
	api := &usersAPI{
		listUsers:  apiclient.Get[apiclient.Void, listQuery, []User](c, "/users"),
		createUser: apiclient.Post[apiclient.Void, userInput, User](c, "/users"),
		getUser:    apiclient.Get[userParams, apiclient.Void, User](c, "/users/:id"),
		updateUser: apiclient.Put[userParams, userInput, User](c, "/users/:id"),
		deleteUser: apiclient.Delete[userParams, apiclient.Void, deleted](c, "/users/:id"),
	}
	api.urls.users = apiclient.MakeURL[apiclient.Void, listQuery]("/users", apiclient.WithPrefix(c.Prefix()))
	api.urls.user = apiclient.MakeURL[userParams, apiclient.Void]("/users/:id", apiclient.WithPrefix(c.Prefix()))
	return api
}
