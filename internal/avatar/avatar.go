/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package avatar resolves the picture shown next to person and org unit records.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/system/constants"
)

const (
	defaultPicture = "nobody"
	pictureSize    = "medium"
)

// Picture is a resolved avatar. Custom is false when the default picture is used.
type Picture struct {
	URL    string
	Custom bool
}

// ResolverInterface looks up the avatar of a person or org unit.
type ResolverInterface interface {
	Resolve(ctx context.Context, sourceKind, id string) (Picture, error)
}

// FileResolver serves avatars from a directory laid out as
// <dir>/user/<id>_medium.png and <dir>/institute/<id>_medium.png.
type FileResolver struct {
	dir     string
	baseURL string
}

// NewFileResolver creates a resolver reading dir and linking below baseURL.
func NewFileResolver(dir, baseURL string) *FileResolver {
	return &FileResolver{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func folder(sourceKind string) (string, error) {
	switch sourceKind {
	case constants.SourcePerson:
		return "user", nil
	case constants.SourceOrgUnit:
		return "institute", nil
	default:
		return "", fmt.Errorf("no avatars for source kind %q", sourceKind)
	}
}

func fileName(id string) string {
	return id + "_" + pictureSize + ".png"
}

// Resolve returns the custom picture when its file exists and the default
// picture of the folder otherwise.
func (r *FileResolver) Resolve(ctx context.Context, sourceKind, id string) (Picture, error) {

	if err := ctx.Err(); err != nil {
		return Picture{}, err
	}
	sub, err := folder(sourceKind)
	if err != nil {
		return Picture{}, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return Picture{}, fmt.Errorf("invalid avatar id %q", id)
	}

	_, err = os.Stat(filepath.Join(r.dir, sub, fileName(id)))
	switch {
	case err == nil:
		return Picture{URL: r.baseURL + "/" + sub + "/" + fileName(id), Custom: true}, nil
	case errors.Is(err, fs.ErrNotExist):
		return Picture{URL: r.baseURL + "/" + sub + "/" + fileName(defaultPicture), Custom: false}, nil
	default:
		return Picture{}, err
	}
}
