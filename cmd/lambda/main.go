package main

import (
	"context"
	"log"
	"recallvantage/cmd"
	"recallvantage/internal/config"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

type lambdaHandler struct {
	ginLambda *ginadapter.GinLambda
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return m.ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	// lambda has no config file, everything comes from RV_ env vars
	cfg, err := config.Load("", true)
	if err != nil {
		log.Fatal(err)
	}
	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	handler := lambdaHandler{
		ginLambda: ginadapter.New(deps.ApiHandler().InitializeRouterEngine()),
	}
	lambda.Start(handler.Handler)
}
