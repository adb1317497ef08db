package evaluator

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const petProto = `syntax = "proto3";
package pets;

message Pet {
  string name = 1;
  int64 legs = 2;
  repeated string tags = 3;
}
`

func writeProtoFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pets.proto")
	if err := os.WriteFile(path, []byte(petProto), 0o644); err != nil {
		t.Fatalf("writing proto fixture: %v", err)
	}
	return path
}

func TestProtoEncodeDecodeRoundTrip(t *testing.T) {
	path := writeProtoFile(t)
	src := fmt.Sprintf(`
Proto.load(%q)
wire = Proto.encode("pets.Pet", {:name => "rex", :legs => 4, :tags => ["good", "dog"]})
back = Proto.decode("pets.Pet", wire)
back[:name] + back[:legs].inspect + back[:tags].join("-")
`, path)
	assertString(t, testEval(t, src), "rex4good-dog")
}

func TestProtoUnknownMessage(t *testing.T) {
	path := writeProtoFile(t)
	src := fmt.Sprintf(`
Proto.load(%q)
Proto.encode("pets.Ghost", {})
`, path)
	assertErrorKind(t, testEval(t, src), ErrRaised)
}

func TestProtoUnknownField(t *testing.T) {
	path := writeProtoFile(t)
	src := fmt.Sprintf(`
Proto.load(%q)
Proto.encode("pets.Pet", {:wings => 2})
`, path)
	assertErrorKind(t, testEval(t, src), ErrTypeMisuse)
}

func TestProtoLoadMissingFile(t *testing.T) {
	assertErrorKind(t, testEval(t, `Proto.load("does/not/exist.proto")`), ErrRaised)
}

func TestGrpcConnectArgChecks(t *testing.T) {
	assertErrorKind(t, testEval(t, `Grpc.connect(7)`), ErrTypeMisuse)
	assertErrorKind(t, testEval(t, `Grpc.invoke(1, 2)`), ErrArityMismatch)
}
