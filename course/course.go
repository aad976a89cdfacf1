// Package course declares the "Intro to Front End Engineering" site: its
// metadata and the sidebar that maps each lesson and assignment to a content
// document.
package course

import (
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
)

// Site metadata.
const (
	URL   = "https://timsexperiments.github.io"
	Base  = "/intro-to-front-end"
	Title = "Intro to Front End Engineering"
)

// Site returns the course site definition.
func Site() site.Site {
	return site.New(Title,
		site.WithURL(URL),
		site.WithBase(Base),
		site.WithSocial(site.NewSocialLink("github", "GitHub", "https://github.com/withastro/starlight")),
		site.WithSidebar(Sidebar()),
	)
}

// Sidebar returns the course navigation tree.
func Sidebar() navigation.Tree {
	return navigation.NewTree(
		navigation.Group("Modules",
			navigation.Group("Front End Foundations",
				navigation.Leaf("Introduction", "modules/01_front_end_foundations/index"),
				navigation.Leaf("1. Browser & DOM", "modules/01_front_end_foundations/01_the_browser_and_dom/lesson"),
				navigation.Leaf("Assignment: Inspector", "modules/01_front_end_foundations/01_the_browser_and_dom/assignment"),
				navigation.Leaf("2. HTML", "modules/01_front_end_foundations/02_html/lesson"),
				navigation.Leaf("Assignment: Skeleton", "modules/01_front_end_foundations/02_html/assignment"),
				navigation.Leaf("3. CSS", "modules/01_front_end_foundations/03_css/lesson"),
				navigation.Leaf("Assignment: Skin", "modules/01_front_end_foundations/03_css/assignment"),
				navigation.Leaf("4. JS Fundamentals", "modules/01_front_end_foundations/04_javascript_fundamentals/lesson"),
				navigation.Leaf("Assignment: Logic", "modules/01_front_end_foundations/04_javascript_fundamentals/assignment"),
				navigation.Leaf("5. Interactive DOM", "modules/01_front_end_foundations/05_interactive_dom/lesson"),
				navigation.Leaf("Assignment: Interaction", "modules/01_front_end_foundations/05_interactive_dom/assignment"),
			),
			// Modules 2-7 only have their introduction written so far.
			module("Across the Internet", "modules/02_across_the_internet"),
			module("Engineering Fundamentals", "modules/03_engineering_fundamentals"),
			module("The Asynchronous Web", "modules/04_the_asynchronous_web"),
			module("Persistence", "modules/05_persistence"),
			module("Modern UI Architecture", "modules/06_modern_ui_architecture"),
			module("Infrastructure & Deployment", "modules/07_infrastructure_and_deployment"),
		),
	)
}

func module(label, dir string) navigation.Node {
	return navigation.Group(label, navigation.Leaf("Introduction", dir+"/index"))
}
