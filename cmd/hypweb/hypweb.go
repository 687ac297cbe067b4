// Command hypweb serves previews of game resources over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-hypatia/paths"
	"badc0de.net/pkg/go-hypatia/resources"
	"badc0de.net/pkg/go-hypatia/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for hypweb")
	accessLog     = flag.Bool("access_log", true, "whether to log every request to stderr")
	debugHandlers = flag.Bool("debug_handlers", false, "whether to serve /debug/requests and /debug/events")

	resourcesPath string
)

func main() {
	paths.SetupResourcesRootFlag(&resourcesPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	figure.NewFigure("hypweb", "", true).Print()
	if resourcesPath == "" {
		glog.Exit("could not find the resources directory; pass --resources_path")
	}
	glog.Infof("serving resources from %s", resourcesPath)

	cache := resources.NewCache(resources.NewLoader(resourcesPath, resources.DefaultDecoders()))

	r := mux.NewRouter()
	web.NewHandler(cache).RegisterRoutes(r)
	if *debugHandlers {
		// x/net/trace registers itself on the default mux.
		r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	var h http.Handler = handlers.CompressHandler(r)
	if *accessLog {
		h = handlers.LoggingHandler(os.Stderr, h)
	}

	glog.Infof("listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
