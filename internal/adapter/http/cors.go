package httpadapter

import "github.com/cloudwego/hertz/pkg/app"

const corsAllowMethods = "GET"

func applyCORSHeaders(ctx *app.RequestContext) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
}
