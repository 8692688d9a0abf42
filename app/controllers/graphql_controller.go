package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/bind"
	gql "github.com/MohamedTawfiq30/dmorder/pkg/graphql"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

// GraphQLController exposes a read-only query surface over the seller's
// own catalogue and order book. The owner comes from the JWT in context,
// never from query arguments.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(products *services.ProductService, orders *services.OrderService) (*GraphQLController, error) {
	sizeEntry := graphql.NewObject(graphql.ObjectConfig{
		Name: "SizeStock",
		Fields: graphql.Fields{
			"size":  &graphql.Field{Type: graphql.String},
			"stock": &graphql.Field{Type: graphql.Int},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if view, ok := p.Source.(services.ProductView); ok {
						return view.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"productId": &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"price":     &graphql.Field{Type: graphql.Float},
			"colors":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"orderLink": &graphql.Field{Type: graphql.String},
			"sizes": &graphql.Field{
				Type: graphql.NewList(sizeEntry),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					view, ok := p.Source.(services.ProductView)
					if !ok {
						return nil, nil
					}
					out := make([]map[string]interface{}, 0, len(view.Sizes))
					for _, label := range view.SelectableSizes() {
						out = append(out, map[string]interface{}{
							"size":  label,
							"stock": view.Sizes[label],
						})
					}
					return out, nil
				},
			},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o, ok := p.Source.(models.Order); ok {
						return o.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"productId":    &graphql.Field{Type: graphql.String},
			"productName":  &graphql.Field{Type: graphql.String},
			"size":         &graphql.Field{Type: graphql.String},
			"color":        &graphql.Field{Type: graphql.String},
			"price":        &graphql.Field{Type: graphql.Float},
			"customerName": &graphql.Field{Type: graphql.String},
			"phone":        &graphql.Field{Type: graphql.String},
			"address":      &graphql.Field{Type: graphql.String},
			"status":       &graphql.Field{Type: graphql.String},
			"createdAt":    &graphql.Field{Type: graphql.DateTime},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.List(p.Context, auth.OwnerID(p.Context))
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					all, err := orders.List(p.Context, auth.OwnerID(p.Context))
					if err != nil {
						return nil, err
					}
					status, _ := p.Args["status"].(string)
					if status == "" {
						return all, nil
					}
					filtered := all[:0:0]
					for _, o := range all {
						if o.Status == status {
							filtered = append(filtered, o)
						}
					}
					return filtered, nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query" validate:"required"`
	Variables map[string]interface{} `json:"variables"`
}

// Query handles POST /api/graphql.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})
	response.Success(w, result)
}
