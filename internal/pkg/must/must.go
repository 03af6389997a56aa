package must

import (
	"github.com/dmorvan/divecalc/internal/pkg"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
)

// PanicIf will call panic(err) in case given err is not nil.
func PanicIf(err error) {
	if err != nil {
		panic(err)
	}
}

func OpenSqliteDBx(fileName string) *sqlx.DB {
	conn, err := pkg.OpenSqliteDBx(fileName)
	PanicIf(err)
	return conn
}

// WriteFile is a wrapper for ioutil.WriteFile.
func WriteFile(name string, buf []byte, perm os.FileMode) {
	err := ioutil.WriteFile(name, buf, perm)
	PanicIf(err)
}

func UnmarshalYaml(data []byte, v interface{}) {
	err := yaml.Unmarshal(data, v)
	PanicIf(err)
}

func MarshalYaml(v interface{}) []byte {
	data, err := yaml.Marshal(v)
	PanicIf(err)
	return data
}
