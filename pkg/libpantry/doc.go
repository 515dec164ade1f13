//
// libpantry is a client that interacts with the Pantry API for tracking personal items.
//

// Create client
//
//	client, err := libpantry.NewDefaultClient("https://pantry.nas.lan")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authenticate
//
//	email := "george.abitbol@nas.lan"
//	password := "12345678"
//
//	err = client.Login(email, password)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// The token can be stored and reused later with client.SetBearerToken.
//	token := client.BearerToken()
//
// Manage items
//
//	item, err := client.CreateItem("Bread", "whole wheat")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.UpdateItem(item.ID, "Bread", "rye")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	items, err := client.Items()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.DeleteItem(item.ID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Errors returned by the server are *APIError
//
//	var aerr *libpantry.APIError
//	if errors.As(err, &aerr) && aerr.StatusCode == http.StatusForbidden {
//		log.Fatal("not your item")
//	}
//
// Logout revokes every token of the user
//
//	err = client.Logout()
//	if err != nil {
//		log.Fatal(err)
//	}
package libpantry
