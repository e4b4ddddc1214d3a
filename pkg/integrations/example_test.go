package integrations_test

import (
	"fmt"

	"github.com/matzehuels/pubkit/pkg/integrations"
)

func ExampleJoinURL() {
	fmt.Println(integrations.JoinURL("https://repo.example.com/releases/", "/com/example/lib/maven-metadata.xml"))
	fmt.Println(integrations.JoinURL("http://localhost:8081", "com/example/lib/1.0/lib-1.0.jar"))
	// Output:
	// https://repo.example.com/releases/com/example/lib/maven-metadata.xml
	// http://localhost:8081/com/example/lib/1.0/lib-1.0.jar
}
