package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestRequestItemsScenario(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	credentials := gofight.D{
		"email":    "joe@example.com",
		"password": "strongpassword",
	}

	r.POST("/register").SetJSON(credentials).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)
	})

	var header gofight.H
	r.POST("/login").SetJSON(credentials).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		require.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)
		header = gofight.H{"Authorization": "Bearer " + string(v.GetStringBytes("token"))}
	})

	r.GET("/items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})

	var id string
	r.POST("/items").SetHeader(header).SetJSON(gofight.D{"name": "Bread", "notes": "whole wheat"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		id = string(v.GetStringBytes("id"))
		assert.NotEmpty(t, id)
		assert.NotEmpty(t, string(v.GetStringBytes("user_id")))
		assert.Equal(t, "Bread", string(v.GetStringBytes("name")))
		assert.Equal(t, "whole wheat", string(v.GetStringBytes("notes")))
		assert.True(t, v.Exists("created_at"))
		assert.True(t, v.Exists("updated_at"))
	})

	r.GET("/items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		items := v.GetArray()
		require.Len(t, items, 1)
		assert.Equal(t, id, string(items[0].GetStringBytes("id")))
	})

	r.PUT("/items/"+id).SetHeader(header).SetJSON(gofight.D{"name": "Bread", "notes": "rye"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	r.GET("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)
		assert.Equal(t, "Bread", string(v.GetStringBytes("name")))
		assert.Equal(t, "rye", string(v.GetStringBytes("notes")))
	})

	r.DELETE("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	r.GET("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":"No such resource"}`, r.Body.String())
	})

	r.DELETE("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	r.POST("/logout").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	r.GET("/items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Unauthenticated"}`, r.Body.String())
	})
}

func TestRequestItemsUnauthenticated(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	item := createItem(ioc, createUser(ioc, "joe@example.com"), "Bread", "whole wheat")

	r.GET("/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
	r.POST("/items").SetJSON(gofight.D{"name": "Milk", "notes": "2L"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
	r.GET("/items/"+item.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
	r.PUT("/items/"+item.ID).SetJSON(gofight.D{"name": "Milk", "notes": "2L"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
	r.DELETE("/items/"+item.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	items, err := ioc.Database.FindItemsByUserID(item.UserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].Name)
}

func TestRequestItemsIsolation(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	joe := createUser(ioc, "joe@example.com")
	jane := createUser(ioc, "jane@example.com")
	first := createItem(ioc, joe, "Bread", "whole wheat")
	second := createItem(ioc, joe, "Milk", "2L")
	createItem(ioc, jane, "Eggs", "a dozen")

	r.GET("/items").SetHeader(bearer(ioc, joe)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		items := v.GetArray()
		require.Len(t, items, 2)
		assert.Equal(t, first.ID, string(items[0].GetStringBytes("id")))
		assert.Equal(t, second.ID, string(items[1].GetStringBytes("id")))
		for _, item := range items {
			assert.Equal(t, joe.ID, string(item.GetStringBytes("user_id")))
		}
	})

	r.GET("/items").SetHeader(bearer(ioc, jane)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		items := v.GetArray()
		require.Len(t, items, 1)
		assert.Equal(t, "Eggs", string(items[0].GetStringBytes("name")))
	})
}

func TestRequestItemsOwnership(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	joe := createUser(ioc, "joe@example.com")
	jane := createUser(ioc, "jane@example.com")
	item := createItem(ioc, joe, "Bread", "whole wheat")
	header := bearer(ioc, jane)

	r.GET("/items/"+item.ID).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":"Unauthorized request"}`, r.Body.String())
	})

	r.PUT("/items/"+item.ID).SetHeader(header).SetJSON(gofight.D{"name": "Stolen", "notes": "bread"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":"Unauthorized request"}`, r.Body.String())
	})

	r.DELETE("/items/"+item.ID).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":"Unauthorized request"}`, r.Body.String())
	})

	// The owner body field is ignored.
	r.POST("/items").SetHeader(header).SetJSON(gofight.D{"name": "Eggs", "notes": "a dozen", "user_id": joe.ID}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)
		assert.Equal(t, jane.ID, string(v.GetStringBytes("user_id")))
	})

	stored, err := ioc.Database.FindItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", stored.Name)
	assert.Equal(t, "whole wheat", stored.Notes)
	assert.Equal(t, joe.ID, stored.UserID)
}

func TestRequestItemsNotFound(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	header := bearer(ioc, createUser(ioc, "joe@example.com"))

	id := "d989ccc9-15c6-475e-839b-1690bd07d073"

	r.GET("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":"No such resource"}`, r.Body.String())
	})

	r.PUT("/items/"+id).SetHeader(header).SetJSON(gofight.D{"name": "Bread", "notes": "rye"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":"No such resource"}`, r.Body.String())
	})

	r.DELETE("/items/"+id).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":"No such resource"}`, r.Body.String())
	})
}

func TestRequestItemsValidation(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	joe := createUser(ioc, "joe@example.com")
	header := bearer(ioc, joe)
	item := createItem(ioc, joe, "Bread", "whole wheat")

	for _, params := range []gofight.D{
		{"name": "", "notes": "2L"},
		{"name": "Milk", "notes": ""},
		{"name": "Milk"},
		{},
	} {
		r.POST("/items").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":"Invalid request"}`, r.Body.String())
		})

		r.PUT("/items/"+item.ID).SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":"Invalid request"}`, r.Body.String())
		})
	}

	r.POST("/items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	// Validation comes before the existence check.
	r.PUT("/items/d989ccc9-15c6-475e-839b-1690bd07d073").SetHeader(header).SetJSON(gofight.D{"name": ""}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	items, err := ioc.Database.FindItemsByUserID(joe.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].Name)
	assert.Equal(t, "whole wheat", items[0].Notes)
}

func TestRequestItemsUnexpectedFailure(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	joe := createUser(ioc, "joe@example.com")
	header := bearer(ioc, joe)
	item := createItem(ioc, joe, "Bread", "whole wheat")

	require.NoError(t, ioc.Database.Close())

	// Storage failures are neither reported as 401 nor 404.
	r.GET("/items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"Invalid request"}`, r.Body.String())
	})
	r.GET("/items/"+item.ID).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"Invalid request"}`, r.Body.String())
	})
}
